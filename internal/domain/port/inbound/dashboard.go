package inbound

import (
	"context"

	"github.com/kubedeck/kubedeck/internal/domain/model"
)

// DashboardPort is the inbound surface the REST layer drives. Every method is
// a one-shot request/response operation; nothing here is a control loop.
type DashboardPort interface {
	ResourcePort
	CommandPort
	LifecyclePort
}

// ResourcePort serves read-only resource views.
type ResourcePort interface {
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

	// Topology renders the Ingress->Service->Deployment->Pod tree for one
	// namespace. The four inputs are fetched independently; the rendered view
	// is not a transactional snapshot of the cluster.
	Topology(ctx context.Context, namespace string) ([]string, error)
}

// CommandPort runs validated operator commands and direct mutations.
type CommandPort interface {
	// RunKubectl validates raw through the gatekeeper and executes it with an
	// argument-array exec call. remote identifies the caller for auditing.
	RunKubectl(ctx context.Context, raw model.RawCommand, remote string) (string, error)
	ScaleDeployment(ctx context.Context, namespace, name string, replicas int32) error
	RestartDeployment(ctx context.Context, namespace, name string) error
	DeletePod(ctx context.Context, namespace, name string) error
	ApplyManifest(ctx context.Context, manifest string) (string, error)
}

// LifecyclePort wraps helm release and k3d cluster operations plus the audit
// trail.
type LifecyclePort interface {
	HelmReleases(ctx context.Context, namespace string) (string, error)
	HelmSearch(ctx context.Context, keyword string) (string, error)
	HelmInstall(ctx context.Context, release, chart, namespace string) (string, error)
	HelmUninstall(ctx context.Context, namespace, release string) (string, error)
	Clusters(ctx context.Context) (string, error)
	CreateCluster(ctx context.Context, name string) (string, error)
	DeleteCluster(ctx context.Context, name string) (string, error)
	SwitchCluster(ctx context.Context, name string) (string, error)
	AuditTrail(ctx context.Context, limit int) ([]model.AuditEntry, error)
}
