package model

// ObjectRef identifies a cluster object by kind, namespace, and name.
type ObjectRef struct {
	Kind      string `json:"kind"`
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

// IngressPath is one HTTP path rule pointing at a backend service.
type IngressPath struct {
	Path        string `json:"path,omitempty"`
	ServiceName string `json:"serviceName"`
	ServicePort int32  `json:"servicePort"`
}

// IngressRule groups the paths served for one (optional) host.
type IngressRule struct {
	Host  string        `json:"host,omitempty"`
	Paths []IngressPath `json:"paths"`
}

// IngressSnapshot is a point-in-time view of an Ingress, reduced to the fields
// the dashboard and the topology resolver need.
type IngressSnapshot struct {
	Name      string        `json:"name"`
	Namespace string        `json:"namespace"`
	Rules     []IngressRule `json:"rules"`
}

// ServiceSnapshot is a point-in-time view of a Service. Selector is empty for
// headless or externally-managed services; an empty selector matches nothing.
type ServiceSnapshot struct {
	Name      string            `json:"name"`
	Namespace string            `json:"namespace"`
	Type      string            `json:"type"`
	ClusterIP string            `json:"clusterIP,omitempty"`
	Selector  map[string]string `json:"selector,omitempty"`
}

// DeploymentSnapshot is a point-in-time view of a Deployment. TemplateLabels
// is the label set stamped onto pods the deployment creates and is the join
// key for pod attribution.
type DeploymentSnapshot struct {
	Name           string            `json:"name"`
	Namespace      string            `json:"namespace"`
	Replicas       int32             `json:"replicas"`
	ReadyReplicas  int32             `json:"readyReplicas"`
	TemplateLabels map[string]string `json:"templateLabels,omitempty"`
}

// PodSnapshot is a point-in-time view of a Pod.
type PodSnapshot struct {
	Name      string            `json:"name"`
	Namespace string            `json:"namespace"`
	Phase     string            `json:"phase"`
	Node      string            `json:"node,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"`
}

// Ref returns the identity triple for a pod.
func (p PodSnapshot) Ref() ObjectRef {
	return ObjectRef{Kind: "Pod", Namespace: p.Namespace, Name: p.Name}
}

// Ref returns the identity triple for a service.
func (s ServiceSnapshot) Ref() ObjectRef {
	return ObjectRef{Kind: "Service", Namespace: s.Namespace, Name: s.Name}
}
