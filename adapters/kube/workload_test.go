package kube

import (
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/searchops/searchops/domain/model"
)

func readerSpec() WorkloadSpec {
	return WorkloadSpec{
		Namespace: "searchops-dev",
		Service: &model.Service{
			Name:           "reader",
			Image:          "reader:dev",
			Port:           8080,
			Replicas:       2,
			ServiceAccount: "reader",
			Env:            map[string]string{"LOG_LEVEL": "info"},
			Resources:      map[string]string{"cpu": "100m", "memory": "256Mi", "memory_limit": "512Mi"},
			Ingress:        &model.ServiceIngress{Host: "search.example.com"},
		},
		EnvFromSecret:    "app-secrets",
		IngressClassName: "nginx",
		OTLPEndpoint:     "http://collector:4317",
	}
}

func TestBuildDeployment(t *testing.T) {
	spec := readerSpec()
	dep := buildDeployment(spec, workloadLabels(spec))

	if dep.Spec.Replicas == nil || *dep.Spec.Replicas != 2 {
		t.Errorf("unexpected replicas: %v", dep.Spec.Replicas)
	}
	ctn := dep.Spec.Template.Spec.Containers[0]
	if ctn.Image != "reader:dev" {
		t.Errorf("unexpected image: %s", ctn.Image)
	}
	if dep.Spec.Template.Spec.ServiceAccountName != "reader" {
		t.Errorf("service account not set")
	}

	envs := map[string]string{}
	for _, e := range ctn.Env {
		envs[e.Name] = e.Value
	}
	if envs["LOG_LEVEL"] != "info" {
		t.Errorf("service env not wired: %v", envs)
	}
	if envs["OTEL_EXPORTER_OTLP_ENDPOINT"] != "http://collector:4317" {
		t.Errorf("otlp endpoint not wired: %v", envs)
	}
	if envs["OTEL_SERVICE_NAME"] != "reader" {
		t.Errorf("service name not wired: %v", envs)
	}

	if len(ctn.EnvFrom) != 1 || ctn.EnvFrom[0].SecretRef.Name != "app-secrets" {
		t.Errorf("envFrom secret not wired: %+v", ctn.EnvFrom)
	}
	if ctn.ReadinessProbe == nil || ctn.ReadinessProbe.HTTPGet.Path != "/readyz" {
		t.Errorf("readiness probe not wired: %+v", ctn.ReadinessProbe)
	}
	if ctn.LivenessProbe == nil || ctn.LivenessProbe.HTTPGet.Path != "/healthz" {
		t.Errorf("liveness probe not wired: %+v", ctn.LivenessProbe)
	}
}

func TestBuildDeployment_DefaultReplicas(t *testing.T) {
	spec := readerSpec()
	spec.Service.Replicas = 0
	dep := buildDeployment(spec, workloadLabels(spec))
	if dep.Spec.Replicas == nil || *dep.Spec.Replicas != 1 {
		t.Errorf("expected default replicas 1, got %v", dep.Spec.Replicas)
	}
}

func TestBuildResources(t *testing.T) {
	r := buildResources(map[string]string{
		"cpu":          "100m",
		"memory":       "256Mi",
		"memory_limit": "512Mi",
		"cpu_limit":    "not-a-quantity",
	})
	if r.Requests.Cpu().String() != "100m" {
		t.Errorf("unexpected cpu request: %s", r.Requests.Cpu())
	}
	if r.Requests.Memory().String() != "256Mi" {
		t.Errorf("unexpected memory request: %s", r.Requests.Memory())
	}
	if r.Limits.Memory().String() != "512Mi" {
		t.Errorf("unexpected memory limit: %s", r.Limits.Memory())
	}
	if _, ok := r.Limits[corev1.ResourceCPU]; ok {
		t.Error("unparsable cpu limit should be skipped")
	}
}

func TestBuildIngress(t *testing.T) {
	spec := readerSpec()
	ing := buildIngress(spec, workloadLabels(spec))
	if ing.Spec.IngressClassName == nil || *ing.Spec.IngressClassName != "nginx" {
		t.Errorf("ingress class not set: %v", ing.Spec.IngressClassName)
	}
	rule := ing.Spec.Rules[0]
	if rule.Host != "search.example.com" {
		t.Errorf("unexpected host: %s", rule.Host)
	}
	path := rule.HTTP.Paths[0]
	if path.Path != "/" {
		t.Errorf("expected default path /, got %s", path.Path)
	}
	if path.Backend.Service.Port.Number != 8080 {
		t.Errorf("unexpected backend port: %d", path.Backend.Service.Port.Number)
	}
}

func TestApplyWorkload_CreatesAndUpdates(t *testing.T) {
	ctx := context.Background()
	c := &Client{Clientset: fake.NewSimpleClientset()}
	spec := readerSpec()

	if err := c.ApplyWorkload(ctx, spec); err != nil {
		t.Fatalf("ApplyWorkload returned error: %v", err)
	}
	if _, err := c.Clientset.AppsV1().Deployments("searchops-dev").Get(ctx, "reader", metav1.GetOptions{}); err != nil {
		t.Fatalf("deployment not created: %v", err)
	}
	if _, err := c.Clientset.CoreV1().Services("searchops-dev").Get(ctx, "reader", metav1.GetOptions{}); err != nil {
		t.Fatalf("service not created: %v", err)
	}
	if _, err := c.Clientset.NetworkingV1().Ingresses("searchops-dev").Get(ctx, "reader", metav1.GetOptions{}); err != nil {
		t.Fatalf("ingress not created: %v", err)
	}

	// Second apply converges instead of failing on AlreadyExists.
	spec.Service.Image = "reader:v2"
	if err := c.ApplyWorkload(ctx, spec); err != nil {
		t.Fatalf("ApplyWorkload update returned error: %v", err)
	}
	dep, err := c.Clientset.AppsV1().Deployments("searchops-dev").Get(ctx, "reader", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get deployment: %v", err)
	}
	if dep.Spec.Template.Spec.Containers[0].Image != "reader:v2" {
		t.Errorf("image not updated: %s", dep.Spec.Template.Spec.Containers[0].Image)
	}
}

func TestDeleteWorkload_Missing(t *testing.T) {
	c := &Client{Clientset: fake.NewSimpleClientset()}
	if err := c.DeleteWorkload(context.Background(), "searchops-dev", "absent"); err != nil {
		t.Errorf("expected nil for missing workload, got %v", err)
	}
}
