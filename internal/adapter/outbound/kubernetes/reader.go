package kubernetes

import (
	"context"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"sigs.k8s.io/yaml"

	"github.com/kubedeck/kubedeck/internal/domain/model"
	"github.com/kubedeck/kubedeck/internal/domain/port/outbound"
)

// Reader provides read-only snapshots of cluster objects for the dashboard.
// Every method performs a fresh list; nothing is cached across requests.
type Reader struct {
	clientset kubernetes.Interface
}

// NewReader creates a Reader backed by the given clientset.
func NewReader(clientset kubernetes.Interface) *Reader {
	return &Reader{clientset: clientset}
}

var _ outbound.ClusterReader = (*Reader)(nil)

// Namespaces returns all namespace names.
func (r *Reader) Namespaces(ctx context.Context) ([]string, error) {
	list, err := r.clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing namespaces: %w", err)
	}
	names := make([]string, 0, len(list.Items))
	for i := range list.Items {
		names = append(names, list.Items[i].Name)
	}
	return names, nil
}

// Pods returns pod snapshots for namespace.
func (r *Reader) Pods(ctx context.Context, namespace string) ([]model.PodSnapshot, error) {
	list, err := r.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing pods in %s: %w", namespace, err)
	}
	pods := make([]model.PodSnapshot, 0, len(list.Items))
	for i := range list.Items {
		p := &list.Items[i]
		pods = append(pods, model.PodSnapshot{
			Name:      p.Name,
			Namespace: p.Namespace,
			Phase:     string(p.Status.Phase),
			Node:      p.Spec.NodeName,
			Labels:    copyLabels(p.Labels),
		})
	}
	return pods, nil
}

// Deployments returns deployment snapshots for namespace. TemplateLabels are
// taken from the pod template, not the deployment's own labels.
func (r *Reader) Deployments(ctx context.Context, namespace string) ([]model.DeploymentSnapshot, error) {
	list, err := r.clientset.AppsV1().Deployments(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing deployments in %s: %w", namespace, err)
	}
	deployments := make([]model.DeploymentSnapshot, 0, len(list.Items))
	for i := range list.Items {
		d := &list.Items[i]
		replicas := int32(0)
		if d.Spec.Replicas != nil {
			replicas = *d.Spec.Replicas
		}
		deployments = append(deployments, model.DeploymentSnapshot{
			Name:           d.Name,
			Namespace:      d.Namespace,
			Replicas:       replicas,
			ReadyReplicas:  d.Status.ReadyReplicas,
			TemplateLabels: copyLabels(d.Spec.Template.Labels),
		})
	}
	return deployments, nil
}

// Services returns service snapshots for namespace. A nil selector becomes an
// empty map, which the resolver treats as matching nothing.
func (r *Reader) Services(ctx context.Context, namespace string) ([]model.ServiceSnapshot, error) {
	list, err := r.clientset.CoreV1().Services(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing services in %s: %w", namespace, err)
	}
	services := make([]model.ServiceSnapshot, 0, len(list.Items))
	for i := range list.Items {
		s := &list.Items[i]
		services = append(services, model.ServiceSnapshot{
			Name:      s.Name,
			Namespace: s.Namespace,
			Type:      string(s.Spec.Type),
			ClusterIP: s.Spec.ClusterIP,
			Selector:  copyLabels(s.Spec.Selector),
		})
	}
	return services, nil
}

// Ingresses returns ingress snapshots for namespace. Rules without an HTTP
// section and paths without a service backend are skipped rather than failing.
func (r *Reader) Ingresses(ctx context.Context, namespace string) ([]model.IngressSnapshot, error) {
	list, err := r.clientset.NetworkingV1().Ingresses(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing ingresses in %s: %w", namespace, err)
	}
	ingresses := make([]model.IngressSnapshot, 0, len(list.Items))
	for i := range list.Items {
		ing := &list.Items[i]
		snapshot := model.IngressSnapshot{Name: ing.Name, Namespace: ing.Namespace}
		for _, rule := range ing.Spec.Rules {
			snapRule := model.IngressRule{Host: rule.Host}
			if rule.HTTP != nil {
				for _, path := range rule.HTTP.Paths {
					if path.Backend.Service == nil {
						continue
					}
					snapRule.Paths = append(snapRule.Paths, model.IngressPath{
						Path:        path.Path,
						ServiceName: path.Backend.Service.Name,
						ServicePort: path.Backend.Service.Port.Number,
					})
				}
			}
			snapshot.Rules = append(snapshot.Rules, snapRule)
		}
		ingresses = append(ingresses, snapshot)
	}
	return ingresses, nil
}

// Roles returns RBAC role snapshots for namespace.
func (r *Reader) Roles(ctx context.Context, namespace string) ([]model.RoleSnapshot, error) {
	list, err := r.clientset.RbacV1().Roles(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing roles in %s: %w", namespace, err)
	}
	roles := make([]model.RoleSnapshot, 0, len(list.Items))
	for i := range list.Items {
		role := &list.Items[i]
		roles = append(roles, model.RoleSnapshot{
			Name:      role.Name,
			Namespace: role.Namespace,
			RuleCount: len(role.Rules),
		})
	}
	return roles, nil
}

// RoleBindings returns role binding snapshots for namespace.
func (r *Reader) RoleBindings(ctx context.Context, namespace string) ([]model.RoleBindingSnapshot, error) {
	list, err := r.clientset.RbacV1().RoleBindings(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing rolebindings in %s: %w", namespace, err)
	}
	bindings := make([]model.RoleBindingSnapshot, 0, len(list.Items))
	for i := range list.Items {
		rb := &list.Items[i]
		subjects := make([]string, 0, len(rb.Subjects))
		for _, s := range rb.Subjects {
			subjects = append(subjects, s.Kind+"/"+s.Name)
		}
		bindings = append(bindings, model.RoleBindingSnapshot{
			Name:      rb.Name,
			Namespace: rb.Namespace,
			RoleRef:   rb.RoleRef.Kind + "/" + rb.RoleRef.Name,
			Subjects:  subjects,
		})
	}
	return bindings, nil
}

// ServiceAccounts returns service account snapshots for namespace.
func (r *Reader) ServiceAccounts(ctx context.Context, namespace string) ([]model.ServiceAccountSnapshot, error) {
	list, err := r.clientset.CoreV1().ServiceAccounts(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing serviceaccounts in %s: %w", namespace, err)
	}
	accounts := make([]model.ServiceAccountSnapshot, 0, len(list.Items))
	for i := range list.Items {
		accounts = append(accounts, model.ServiceAccountSnapshot{
			Name:      list.Items[i].Name,
			Namespace: list.Items[i].Namespace,
		})
	}
	return accounts, nil
}

// PersistentVolumeClaims returns PVC snapshots for namespace.
func (r *Reader) PersistentVolumeClaims(ctx context.Context, namespace string) ([]model.VolumeClaimSnapshot, error) {
	list, err := r.clientset.CoreV1().PersistentVolumeClaims(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing persistentvolumeclaims in %s: %w", namespace, err)
	}
	claims := make([]model.VolumeClaimSnapshot, 0, len(list.Items))
	for i := range list.Items {
		pvc := &list.Items[i]
		claim := model.VolumeClaimSnapshot{
			Name:       pvc.Name,
			Namespace:  pvc.Namespace,
			Phase:      string(pvc.Status.Phase),
			VolumeName: pvc.Spec.VolumeName,
		}
		if pvc.Spec.StorageClassName != nil {
			claim.StorageClass = *pvc.Spec.StorageClassName
		}
		if qty, ok := pvc.Status.Capacity[corev1.ResourceStorage]; ok {
			claim.Capacity = qty.String()
		}
		claims = append(claims, claim)
	}
	return claims, nil
}

// PersistentVolumes returns PV snapshots (cluster-scoped).
func (r *Reader) PersistentVolumes(ctx context.Context) ([]model.VolumeSnapshot, error) {
	list, err := r.clientset.CoreV1().PersistentVolumes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing persistentvolumes: %w", err)
	}
	volumes := make([]model.VolumeSnapshot, 0, len(list.Items))
	for i := range list.Items {
		pv := &list.Items[i]
		vol := model.VolumeSnapshot{
			Name:  pv.Name,
			Phase: string(pv.Status.Phase),
		}
		if qty, ok := pv.Spec.Capacity[corev1.ResourceStorage]; ok {
			vol.Capacity = qty.String()
		}
		if pv.Spec.ClaimRef != nil {
			vol.Claim = pv.Spec.ClaimRef.Namespace + "/" + pv.Spec.ClaimRef.Name
		}
		volumes = append(volumes, vol)
	}
	return volumes, nil
}

// StorageClasses returns storage class snapshots (cluster-scoped).
func (r *Reader) StorageClasses(ctx context.Context) ([]model.StorageClassSnapshot, error) {
	list, err := r.clientset.StorageV1().StorageClasses().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing storageclasses: %w", err)
	}
	classes := make([]model.StorageClassSnapshot, 0, len(list.Items))
	for i := range list.Items {
		sc := &list.Items[i]
		classes = append(classes, model.StorageClassSnapshot{
			Name:        sc.Name,
			Provisioner: sc.Provisioner,
			IsDefault:   sc.Annotations["storageclass.kubernetes.io/is-default-class"] == "true",
		})
	}
	return classes, nil
}

// ObjectYAML fetches one object and renders it as YAML for the editor modal.
// Server-side bookkeeping (managedFields) is stripped first.
func (r *Reader) ObjectYAML(ctx context.Context, kind, namespace, name string) (string, error) {
	obj, err := r.getObject(ctx, kind, namespace, name)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("marshaling %s %s/%s to yaml: %w", kind, namespace, name, err)
	}
	return string(data), nil
}

func (r *Reader) getObject(ctx context.Context, kind, namespace, name string) (interface{}, error) {
	opts := metav1.GetOptions{}
	switch strings.ToLower(kind) {
	case "pod", "pods":
		obj, err := r.clientset.CoreV1().Pods(namespace).Get(ctx, name, opts)
		if err != nil {
			return nil, fmt.Errorf("getting pod %s/%s: %w", namespace, name, err)
		}
		obj.ManagedFields = nil
		return obj, nil
	case "deployment", "deployments":
		obj, err := r.clientset.AppsV1().Deployments(namespace).Get(ctx, name, opts)
		if err != nil {
			return nil, fmt.Errorf("getting deployment %s/%s: %w", namespace, name, err)
		}
		obj.ManagedFields = nil
		return obj, nil
	case "service", "services", "svc":
		obj, err := r.clientset.CoreV1().Services(namespace).Get(ctx, name, opts)
		if err != nil {
			return nil, fmt.Errorf("getting service %s/%s: %w", namespace, name, err)
		}
		obj.ManagedFields = nil
		return obj, nil
	case "ingress", "ingresses":
		obj, err := r.clientset.NetworkingV1().Ingresses(namespace).Get(ctx, name, opts)
		if err != nil {
			return nil, fmt.Errorf("getting ingress %s/%s: %w", namespace, name, err)
		}
		obj.ManagedFields = nil
		return obj, nil
	case "configmap", "configmaps":
		obj, err := r.clientset.CoreV1().ConfigMaps(namespace).Get(ctx, name, opts)
		if err != nil {
			return nil, fmt.Errorf("getting configmap %s/%s: %w", namespace, name, err)
		}
		obj.ManagedFields = nil
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported resource kind: %s", kind)
	}
}

// HealthCheck verifies connectivity to the API server via ServerVersion.
func (r *Reader) HealthCheck(ctx context.Context) error {
	_, err := r.clientset.Discovery().ServerVersion()
	if err != nil {
		return fmt.Errorf("k8s health check failed: %w", err)
	}
	return nil
}

// copyLabels clones a label map so snapshots never alias client-go objects.
// Nil maps come back empty, not nil.
func copyLabels(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
