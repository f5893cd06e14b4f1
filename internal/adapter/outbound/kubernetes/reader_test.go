package kubernetes

import (
	"context"
	"strings"
	"testing"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
)

func testReader(objs ...runtime.Object) *Reader {
	return NewReader(fake.NewSimpleClientset(objs...))
}

func TestPods_Snapshot(t *testing.T) {
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "web-abc",
			Namespace: "default",
			Labels:    map[string]string{"app": "web"},
		},
		Spec:   corev1.PodSpec{NodeName: "node1"},
		Status: corev1.PodStatus{Phase: corev1.PodRunning},
	}
	r := testReader(pod)

	pods, err := r.Pods(context.Background(), "default")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pods) != 1 {
		t.Fatalf("expected 1 pod, got %d", len(pods))
	}
	got := pods[0]
	if got.Name != "web-abc" || got.Phase != "Running" || got.Node != "node1" {
		t.Errorf("unexpected snapshot: %+v", got)
	}
	if got.Labels["app"] != "web" {
		t.Errorf("expected labels copied, got %v", got.Labels)
	}
}

func TestServices_NilSelectorBecomesEmpty(t *testing.T) {
	svc := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: "headless", Namespace: "default"},
		Spec:       corev1.ServiceSpec{Type: corev1.ServiceTypeClusterIP},
	}
	r := testReader(svc)

	services, err := r.Services(context.Background(), "default")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(services) != 1 {
		t.Fatalf("expected 1 service, got %d", len(services))
	}
	if services[0].Selector == nil {
		t.Error("expected empty selector map, got nil")
	}
	if len(services[0].Selector) != 0 {
		t.Errorf("expected empty selector, got %v", services[0].Selector)
	}
}

func TestDeployments_TemplateLabels(t *testing.T) {
	replicas := int32(3)
	dep := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "api",
			Namespace: "default",
			Labels:    map[string]string{"team": "platform"},
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: map[string]string{"app": "api"}},
			},
		},
	}
	r := testReader(dep)

	deployments, err := r.Deployments(context.Background(), "default")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deployments) != 1 {
		t.Fatalf("expected 1 deployment, got %d", len(deployments))
	}
	got := deployments[0]
	if got.Replicas != 3 {
		t.Errorf("expected 3 replicas, got %d", got.Replicas)
	}
	// The join key is the pod template's labels, not the deployment's own.
	if got.TemplateLabels["app"] != "api" || got.TemplateLabels["team"] != "" {
		t.Errorf("unexpected template labels: %v", got.TemplateLabels)
	}
}

func TestIngresses_SkipsRulesWithoutBackends(t *testing.T) {
	ing := &networkingv1.Ingress{
		ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default"},
		Spec: networkingv1.IngressSpec{
			Rules: []networkingv1.IngressRule{
				{
					Host: "example.com",
					IngressRuleValue: networkingv1.IngressRuleValue{
						HTTP: &networkingv1.HTTPIngressRuleValue{
							Paths: []networkingv1.HTTPIngressPath{
								{
									Path: "/",
									Backend: networkingv1.IngressBackend{
										Service: &networkingv1.IngressServiceBackend{
											Name: "svc-a",
											Port: networkingv1.ServiceBackendPort{Number: 80},
										},
									},
								},
								{
									Path:    "/none",
									Backend: networkingv1.IngressBackend{},
								},
							},
						},
					},
				},
				{Host: "bare.example.com"},
			},
		},
	}
	r := testReader(ing)

	ingresses, err := r.Ingresses(context.Background(), "default")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ingresses) != 1 {
		t.Fatalf("expected 1 ingress, got %d", len(ingresses))
	}
	got := ingresses[0]
	if len(got.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(got.Rules))
	}
	if len(got.Rules[0].Paths) != 1 || got.Rules[0].Paths[0].ServiceName != "svc-a" {
		t.Errorf("expected single backend path to svc-a, got %v", got.Rules[0].Paths)
	}
	if len(got.Rules[1].Paths) != 0 {
		t.Errorf("expected rule without HTTP section to have no paths, got %v", got.Rules[1].Paths)
	}
}

func TestNamespaces(t *testing.T) {
	r := testReader(
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "default"}},
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "staging"}},
	)

	names, err := r.Namespaces(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("expected 2 namespaces, got %v", names)
	}
}

func TestObjectYAML(t *testing.T) {
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "web-abc", Namespace: "default"},
	}
	r := testReader(pod)

	out, err := r.ObjectYAML(context.Background(), "pod", "default", "web-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "name: web-abc") {
		t.Errorf("expected yaml to contain object name, got:\n%s", out)
	}
}

func TestObjectYAML_UnsupportedKind(t *testing.T) {
	r := testReader()

	_, err := r.ObjectYAML(context.Background(), "crontab", "default", "x")
	if err == nil || !strings.Contains(err.Error(), "unsupported resource kind") {
		t.Errorf("expected unsupported-kind error, got %v", err)
	}
}
