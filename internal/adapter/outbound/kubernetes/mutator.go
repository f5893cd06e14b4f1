package kubernetes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes"

	"github.com/kubedeck/kubedeck/internal/domain/port/outbound"
)

// Mutator applies direct mutations through the API server. Namespaces in the
// protected set (typically kube-system and friends) reject every mutation.
type Mutator struct {
	clientset kubernetes.Interface
	protected map[string]bool
}

// NewMutator creates a Mutator.
func NewMutator(clientset kubernetes.Interface, protectedNamespaces []string) *Mutator {
	protected := make(map[string]bool, len(protectedNamespaces))
	for _, ns := range protectedNamespaces {
		protected[ns] = true
	}
	return &Mutator{clientset: clientset, protected: protected}
}

var _ outbound.ClusterMutator = (*Mutator)(nil)

// ScaleDeployment sets the replica count via a strategic-merge patch.
func (m *Mutator) ScaleDeployment(ctx context.Context, namespace, name string, replicas int32) error {
	if m.protected[namespace] {
		return fmt.Errorf("scale denied: namespace %s is protected", namespace)
	}

	patch := map[string]interface{}{
		"spec": map[string]interface{}{
			"replicas": replicas,
		},
	}

	data, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshalling scale patch: %w", err)
	}

	_, err = m.clientset.AppsV1().Deployments(namespace).Patch(
		ctx, name, types.StrategicMergePatchType, data, metav1.PatchOptions{})
	if err != nil {
		return fmt.Errorf("patching deployment %s/%s for scale: %w", namespace, name, err)
	}
	return nil
}

// RestartDeployment triggers a rollout restart by patching the pod template
// annotation, same as kubectl rollout restart.
func (m *Mutator) RestartDeployment(ctx context.Context, namespace, name string) error {
	if m.protected[namespace] {
		return fmt.Errorf("restart denied: namespace %s is protected", namespace)
	}

	patch := map[string]interface{}{
		"spec": map[string]interface{}{
			"template": map[string]interface{}{
				"metadata": map[string]interface{}{
					"annotations": map[string]string{
						"kubectl.kubernetes.io/restartedAt": time.Now().UTC().Format(time.RFC3339),
					},
				},
			},
		},
	}

	data, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshalling restart patch: %w", err)
	}

	_, err = m.clientset.AppsV1().Deployments(namespace).Patch(
		ctx, name, types.StrategicMergePatchType, data, metav1.PatchOptions{})
	if err != nil {
		return fmt.Errorf("patching deployment %s/%s for restart: %w", namespace, name, err)
	}
	return nil
}

// DeletePod deletes a pod with a zero grace period.
func (m *Mutator) DeletePod(ctx context.Context, namespace, name string) error {
	if m.protected[namespace] {
		return fmt.Errorf("delete denied: namespace %s is protected", namespace)
	}

	gracePeriod := int64(0)
	err := m.clientset.CoreV1().Pods(namespace).Delete(ctx, name, metav1.DeleteOptions{
		GracePeriodSeconds: &gracePeriod,
	})
	if err != nil {
		return fmt.Errorf("deleting pod %s/%s: %w", namespace, name, err)
	}
	return nil
}
