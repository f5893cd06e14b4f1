package outbound

import (
	"context"

	"github.com/kubedeck/kubedeck/internal/domain/model"
)

// ClusterReader provides read-only snapshots of cluster objects. Absent
// optional fields (e.g. a missing service selector) are returned as empty
// values, never as errors.
type ClusterReader interface {
	Namespaces(ctx context.Context) ([]string, error)
	Pods(ctx context.Context, namespace string) ([]model.PodSnapshot, error)
	Deployments(ctx context.Context, namespace string) ([]model.DeploymentSnapshot, error)
	Services(ctx context.Context, namespace string) ([]model.ServiceSnapshot, error)
	Ingresses(ctx context.Context, namespace string) ([]model.IngressSnapshot, error)
	Roles(ctx context.Context, namespace string) ([]model.RoleSnapshot, error)
	RoleBindings(ctx context.Context, namespace string) ([]model.RoleBindingSnapshot, error)
	ServiceAccounts(ctx context.Context, namespace string) ([]model.ServiceAccountSnapshot, error)
	PersistentVolumeClaims(ctx context.Context, namespace string) ([]model.VolumeClaimSnapshot, error)
	PersistentVolumes(ctx context.Context) ([]model.VolumeSnapshot, error)
	StorageClasses(ctx context.Context) ([]model.StorageClassSnapshot, error)
	ObjectYAML(ctx context.Context, kind, namespace, name string) (string, error)
	HealthCheck(ctx context.Context) error
}

// ClusterMutator applies direct mutations through the API server.
type ClusterMutator interface {
	ScaleDeployment(ctx context.Context, namespace, name string, replicas int32) error
	RestartDeployment(ctx context.Context, namespace, name string) error
	DeletePod(ctx context.Context, namespace, name string) error
}
