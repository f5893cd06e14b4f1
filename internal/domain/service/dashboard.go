package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kubedeck/kubedeck/internal/domain/model"
	"github.com/kubedeck/kubedeck/internal/domain/port/inbound"
	"github.com/kubedeck/kubedeck/internal/domain/port/outbound"
)

// Binaries names the external programs the dashboard shells out to.
type Binaries struct {
	Kubectl string
	Helm    string
	K3d     string
}

// Dashboard implements inbound.DashboardPort. It proxies reads to the cluster
// reader, mutations to the mutator or the argument-array runner, and runs
// free-form kubectl commands through the gatekeeper.
type Dashboard struct {
	reader     outbound.ClusterReader
	mutator    outbound.ClusterMutator
	runner     outbound.CommandRunner
	gatekeeper *Gatekeeper
	resolver   Resolver
	audits     outbound.AuditRepository
	bins       Binaries
	logger     *slog.Logger
}

// NewDashboard creates a Dashboard with all required dependencies.
func NewDashboard(
	reader outbound.ClusterReader,
	mutator outbound.ClusterMutator,
	runner outbound.CommandRunner,
	gatekeeper *Gatekeeper,
	audits outbound.AuditRepository,
	bins Binaries,
	logger *slog.Logger,
) *Dashboard {
	return &Dashboard{
		reader:     reader,
		mutator:    mutator,
		runner:     runner,
		gatekeeper: gatekeeper,
		audits:     audits,
		bins:       bins,
		logger:     logger,
	}
}

// Ensure Dashboard satisfies the inbound port at compile time.
var _ inbound.DashboardPort = (*Dashboard)(nil)

// --- resource reads ---

func (d *Dashboard) Namespaces(ctx context.Context) ([]string, error) {
	return d.reader.Namespaces(ctx)
}

func (d *Dashboard) Pods(ctx context.Context, namespace string) ([]model.PodSnapshot, error) {
	return d.reader.Pods(ctx, namespace)
}

func (d *Dashboard) Deployments(ctx context.Context, namespace string) ([]model.DeploymentSnapshot, error) {
	return d.reader.Deployments(ctx, namespace)
}

func (d *Dashboard) Services(ctx context.Context, namespace string) ([]model.ServiceSnapshot, error) {
	return d.reader.Services(ctx, namespace)
}

func (d *Dashboard) Ingresses(ctx context.Context, namespace string) ([]model.IngressSnapshot, error) {
	return d.reader.Ingresses(ctx, namespace)
}

func (d *Dashboard) Roles(ctx context.Context, namespace string) ([]model.RoleSnapshot, error) {
	return d.reader.Roles(ctx, namespace)
}

func (d *Dashboard) RoleBindings(ctx context.Context, namespace string) ([]model.RoleBindingSnapshot, error) {
	return d.reader.RoleBindings(ctx, namespace)
}

func (d *Dashboard) ServiceAccounts(ctx context.Context, namespace string) ([]model.ServiceAccountSnapshot, error) {
	return d.reader.ServiceAccounts(ctx, namespace)
}

func (d *Dashboard) PersistentVolumeClaims(ctx context.Context, namespace string) ([]model.VolumeClaimSnapshot, error) {
	return d.reader.PersistentVolumeClaims(ctx, namespace)
}

func (d *Dashboard) PersistentVolumes(ctx context.Context) ([]model.VolumeSnapshot, error) {
	return d.reader.PersistentVolumes(ctx)
}

func (d *Dashboard) StorageClasses(ctx context.Context) ([]model.StorageClassSnapshot, error) {
	return d.reader.StorageClasses(ctx)
}

func (d *Dashboard) ObjectYAML(ctx context.Context, kind, namespace, name string) (string, error) {
	return d.reader.ObjectYAML(ctx, kind, namespace, name)
}

// Topology fetches the four object lists in parallel and renders the tree.
// The lists are independent point-in-time reads: an object deleted between
// fetches may still appear. Quiescence is not guaranteed.
func (d *Dashboard) Topology(ctx context.Context, namespace string) ([]string, error) {
	var (
		ingresses   []model.IngressSnapshot
		services    []model.ServiceSnapshot
		deployments []model.DeploymentSnapshot
		pods        []model.PodSnapshot
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ingresses, err = d.reader.Ingresses(gCtx, namespace)
		return err
	})
	g.Go(func() (err error) {
		services, err = d.reader.Services(gCtx, namespace)
		return err
	})
	g.Go(func() (err error) {
		deployments, err = d.reader.Deployments(gCtx, namespace)
		return err
	})
	g.Go(func() (err error) {
		pods, err = d.reader.Pods(gCtx, namespace)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching topology inputs for %s: %w", namespace, err)
	}

	return d.resolver.Render(ingresses, services, deployments, pods), nil
}

// --- commands and mutations ---

// RunKubectl validates raw through the gatekeeper, executes it as an argument
// array, and records the outcome. Validation failures are returned unchanged
// so the HTTP layer can map their kind.
func (d *Dashboard) RunKubectl(ctx context.Context, raw model.RawCommand, remote string) (string, error) {
	validated, err := d.gatekeeper.Validate(ctx, raw, remote)
	if err != nil {
		return "", err
	}

	result, err := d.runner.Run(ctx, d.bins.Kubectl, validated.Args...)
	if err != nil {
		return "", model.NewExecutionFailure(err.Error())
	}
	if result.ExitCode != 0 {
		return "", model.NewExecutionFailure(strings.TrimSpace(result.Stderr))
	}

	d.recordAudit(ctx, model.NewAuditEntry(model.AuditCommandExecuted, validated.Line, validated.Subcommand).
		WithRemote(remote))
	return result.Stdout, nil
}

func (d *Dashboard) ScaleDeployment(ctx context.Context, namespace, name string, replicas int32) error {
	if err := d.mutator.ScaleDeployment(ctx, namespace, name, replicas); err != nil {
		return err
	}
	d.recordAudit(ctx, model.NewAuditEntry(model.AuditResourceScaled,
		fmt.Sprintf("scale deployment/%s --replicas=%d", name, replicas), "scale").
		WithNamespace(namespace))
	return nil
}

func (d *Dashboard) RestartDeployment(ctx context.Context, namespace, name string) error {
	if err := d.mutator.RestartDeployment(ctx, namespace, name); err != nil {
		return err
	}
	d.recordAudit(ctx, model.NewAuditEntry(model.AuditResourceRestarted,
		"rollout restart deployment/"+name, "rollout").
		WithNamespace(namespace))
	return nil
}

func (d *Dashboard) DeletePod(ctx context.Context, namespace, name string) error {
	if err := d.mutator.DeletePod(ctx, namespace, name); err != nil {
		return err
	}
	d.recordAudit(ctx, model.NewAuditEntry(model.AuditResourceDeleted,
		"delete pod/"+name, "delete").
		WithNamespace(namespace))
	return nil
}

// ApplyManifest pipes the manifest to kubectl apply on stdin.
func (d *Dashboard) ApplyManifest(ctx context.Context, manifest string) (string, error) {
	result, err := d.runner.RunWithInput(ctx, manifest, d.bins.Kubectl, "apply", "-f", "-")
	if err != nil {
		return "", model.NewExecutionFailure(err.Error())
	}
	if result.ExitCode != 0 {
		return "", model.NewExecutionFailure(strings.TrimSpace(result.Stderr))
	}
	d.recordAudit(ctx, model.NewAuditEntry(model.AuditManifestApplied, "apply -f -", "apply"))
	return result.Stdout, nil
}

// --- helm ---

func (d *Dashboard) HelmReleases(ctx context.Context, namespace string) (string, error) {
	args := []string{"list", "-o", "json"}
	if namespace != "" {
		args = append(args, "-n", namespace)
	} else {
		args = append(args, "-A")
	}
	return d.runTool(ctx, d.bins.Helm, args...)
}

func (d *Dashboard) HelmSearch(ctx context.Context, keyword string) (string, error) {
	return d.runTool(ctx, d.bins.Helm, "search", "repo", keyword, "-o", "json")
}

func (d *Dashboard) HelmInstall(ctx context.Context, release, chart, namespace string) (string, error) {
	args := []string{"install", release, chart}
	if namespace != "" {
		args = append(args, "-n", namespace, "--create-namespace")
	}
	out, err := d.runTool(ctx, d.bins.Helm, args...)
	if err != nil {
		return "", err
	}
	d.recordAudit(ctx, model.NewAuditEntry(model.AuditHelmRelease,
		"helm install "+release+" "+chart, "install").WithNamespace(namespace))
	return out, nil
}

func (d *Dashboard) HelmUninstall(ctx context.Context, namespace, release string) (string, error) {
	args := []string{"uninstall", release}
	if namespace != "" {
		args = append(args, "-n", namespace)
	}
	out, err := d.runTool(ctx, d.bins.Helm, args...)
	if err != nil {
		return "", err
	}
	d.recordAudit(ctx, model.NewAuditEntry(model.AuditHelmRelease,
		"helm uninstall "+release, "uninstall").WithNamespace(namespace))
	return out, nil
}

// --- cluster lifecycle ---

func (d *Dashboard) Clusters(ctx context.Context) (string, error) {
	return d.runTool(ctx, d.bins.K3d, "cluster", "list", "-o", "json")
}

func (d *Dashboard) CreateCluster(ctx context.Context, name string) (string, error) {
	out, err := d.runTool(ctx, d.bins.K3d, "cluster", "create", name)
	if err != nil {
		return "", err
	}
	d.recordAudit(ctx, model.NewAuditEntry(model.AuditClusterLifecycle,
		"k3d cluster create "+name, "create"))
	return out, nil
}

func (d *Dashboard) DeleteCluster(ctx context.Context, name string) (string, error) {
	out, err := d.runTool(ctx, d.bins.K3d, "cluster", "delete", name)
	if err != nil {
		return "", err
	}
	d.recordAudit(ctx, model.NewAuditEntry(model.AuditClusterLifecycle,
		"k3d cluster delete "+name, "delete"))
	return out, nil
}

// SwitchCluster points the kubectl context at the named k3d cluster.
func (d *Dashboard) SwitchCluster(ctx context.Context, name string) (string, error) {
	out, err := d.runTool(ctx, d.bins.Kubectl, "config", "use-context", "k3d-"+name)
	if err != nil {
		return "", err
	}
	d.recordAudit(ctx, model.NewAuditEntry(model.AuditClusterLifecycle,
		"kubectl config use-context k3d-"+name, "config"))
	return out, nil
}

func (d *Dashboard) AuditTrail(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	return d.audits.ListRecent(ctx, limit)
}

// --- helpers ---

// runTool executes a trusted binary and classifies non-zero exits as
// execution failures with stderr verbatim.
func (d *Dashboard) runTool(ctx context.Context, program string, args ...string) (string, error) {
	result, err := d.runner.Run(ctx, program, args...)
	if err != nil {
		return "", model.NewExecutionFailure(err.Error())
	}
	if result.ExitCode != 0 {
		return "", model.NewExecutionFailure(strings.TrimSpace(result.Stderr))
	}
	return result.Stdout, nil
}

// recordAudit writes an audit entry, logging rather than propagating failures.
func (d *Dashboard) recordAudit(ctx context.Context, entry model.AuditEntry) {
	if err := d.audits.Create(ctx, entry); err != nil {
		d.logger.Error("writing audit entry", "error", err, "eventType", entry.EventType)
	}
}
