package service

import (
	"strings"

	"github.com/kubedeck/kubedeck/internal/domain/model"
)

// topologyIndent is the indentation step per graph depth:
// 0 = ingress, 1 = service, 2 = deployment or direct pod, 3 = pod under deployment.
const topologyIndent = "  "

// NoConnectionsLine is the sentinel emitted when nothing connects to anything,
// so callers can distinguish "ran, found nothing" from "did not run".
const NoConnectionsLine = "No connections found"

// Resolver computes the Ingress->Service->Deployment->Pod connectivity tree
// for one namespace's already-fetched object lists. It is pure and total:
// absence of data produces fewer lines, never an error.
type Resolver struct{}

// Render walks ingresses in input order, emitting each referenced service at
// most once with its deployments and pods beneath it, then appends services
// not reachable from any ingress in input order. Output is deterministic for
// a fixed input ordering.
func (Resolver) Render(
	ingresses []model.IngressSnapshot,
	services []model.ServiceSnapshot,
	deployments []model.DeploymentSnapshot,
	pods []model.PodSnapshot,
) []string {
	svcByName := make(map[string]*model.ServiceSnapshot, len(services))
	for i := range services {
		svcByName[services[i].Name] = &services[i]
	}

	var lines []string
	emitted := make(map[string]bool, len(services))

	for i := range ingresses {
		ing := &ingresses[i]
		lines = append(lines, "ingress/"+ing.Name)
		for _, name := range targetServiceNames(ing) {
			svc, ok := svcByName[name]
			if !ok || emitted[name] {
				// Orphaned backend references stay visible as the ingress
				// header alone; already-emitted services are not repeated.
				continue
			}
			emitted[name] = true
			lines = appendServiceTree(lines, svc, deployments, pods)
		}
	}

	for i := range services {
		svc := &services[i]
		if emitted[svc.Name] {
			continue
		}
		emitted[svc.Name] = true
		lines = appendServiceTree(lines, svc, deployments, pods)
	}

	if len(lines) == 0 {
		return []string{NoConnectionsLine}
	}
	return lines
}

// targetServiceNames returns the distinct backend service names of an ingress
// in first-seen order across its rules.
func targetServiceNames(ing *model.IngressSnapshot) []string {
	var names []string
	seen := make(map[string]bool)
	for _, rule := range ing.Rules {
		for _, path := range rule.Paths {
			if path.ServiceName == "" || seen[path.ServiceName] {
				continue
			}
			seen[path.ServiceName] = true
			names = append(names, path.ServiceName)
		}
	}
	return names
}

// appendServiceTree emits one service line plus its deployment and pod
// sub-structure. Pods are attributed directly to the service only when no
// deployment matched its selector; with deployment matches, pods are assumed
// reachable via the deployment path.
func appendServiceTree(lines []string, svc *model.ServiceSnapshot, deployments []model.DeploymentSnapshot, pods []model.PodSnapshot) []string {
	lines = append(lines, indent(1)+"service/"+svc.Name)

	matched := false
	for i := range deployments {
		dep := &deployments[i]
		if !matchesSelector(svc.Selector, dep.TemplateLabels) {
			continue
		}
		matched = true
		lines = append(lines, indent(2)+"deployment/"+dep.Name)
		for j := range pods {
			if matchesSelector(dep.TemplateLabels, pods[j].Labels) {
				lines = append(lines, indent(3)+"pod/"+pods[j].Name)
			}
		}
	}

	if !matched {
		for j := range pods {
			if matchesSelector(svc.Selector, pods[j].Labels) {
				lines = append(lines, indent(2)+"pod/"+pods[j].Name)
			}
		}
	}
	return lines
}

// matchesSelector reports whether every key in selector exists in labels with
// an equal value. Shared by the service->deployment and ->pod matching steps
// so the two call sites cannot drift. An empty or absent selector matches
// nothing, never everything.
func matchesSelector(selector, labels map[string]string) bool {
	if len(selector) == 0 {
		return false
	}
	for k, v := range selector {
		if labels[k] != v {
			return false
		}
	}
	return true
}

func indent(depth int) string {
	return strings.Repeat(topologyIndent, depth)
}
