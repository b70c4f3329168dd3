package kube

import (
	"context"
	"testing"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func readerDeployment(ready, desired int32) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "reader",
			Namespace: "searchops-dev",
			Labels:    map[string]string{"app": "reader", LabelManagedBy: "searchops"},
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &desired,
			Template: corev1.PodTemplateSpec{
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{{
						Name:  "reader",
						Ports: []corev1.ContainerPort{{Name: "http", ContainerPort: 8080}},
					}},
				},
			},
		},
		Status: appsv1.DeploymentStatus{ReadyReplicas: ready},
	}
}

func TestCheckDeployment_Missing(t *testing.T) {
	c := &Client{Clientset: fake.NewSimpleClientset()}
	st, err := c.CheckDeployment(context.Background(), "searchops-dev", "reader", nil, 0)
	if err != nil {
		t.Fatalf("CheckDeployment returned error: %v", err)
	}
	if st.Exists || st.Available {
		t.Errorf("expected absent deployment, got %+v", st)
	}
}

func TestCheckDeployment_Available(t *testing.T) {
	c := &Client{Clientset: fake.NewSimpleClientset(readerDeployment(2, 2))}
	st, err := c.CheckDeployment(context.Background(), "searchops-dev", "reader", map[string]string{"app": "reader"}, 8080)
	if err != nil {
		t.Fatalf("CheckDeployment returned error: %v", err)
	}
	if !st.Exists || !st.Available {
		t.Errorf("expected available deployment, got %+v", st)
	}
	if !st.LabelsMatch || !st.PortMatch {
		t.Errorf("expected labels and port to match: %+v", st)
	}
}

func TestCheckDeployment_Degraded(t *testing.T) {
	c := &Client{Clientset: fake.NewSimpleClientset(readerDeployment(1, 2))}
	st, err := c.CheckDeployment(context.Background(), "searchops-dev", "reader", map[string]string{"app": "other"}, 9090)
	if err != nil {
		t.Fatalf("CheckDeployment returned error: %v", err)
	}
	if st.Available {
		t.Errorf("expected degraded deployment, got %+v", st)
	}
	if st.LabelsMatch {
		t.Error("expected labels mismatch")
	}
	if st.PortMatch {
		t.Error("expected port mismatch")
	}
}

func TestRestartDeployment_SetsAnnotation(t *testing.T) {
	ctx := context.Background()
	c := &Client{Clientset: fake.NewSimpleClientset(readerDeployment(2, 2))}

	if err := c.RestartDeployment(ctx, "searchops-dev", "reader"); err != nil {
		t.Fatalf("RestartDeployment returned error: %v", err)
	}
	dep, err := c.Clientset.AppsV1().Deployments("searchops-dev").Get(ctx, "reader", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get deployment: %v", err)
	}
	if dep.Spec.Template.Annotations[AnnotationRestartedAt] == "" {
		t.Errorf("restart annotation not set: %+v", dep.Spec.Template.Annotations)
	}
}

func TestRestartDeployment_Missing(t *testing.T) {
	c := &Client{Clientset: fake.NewSimpleClientset()}
	if err := c.RestartDeployment(context.Background(), "searchops-dev", "absent"); err == nil {
		t.Fatal("expected error for missing deployment")
	}
}

func TestIngressHostname_Unpublished(t *testing.T) {
	c := &Client{Clientset: fake.NewSimpleClientset()}
	host, err := c.IngressHostname(context.Background(), "searchops-dev", "reader")
	if err != nil {
		t.Fatalf("IngressHostname returned error: %v", err)
	}
	if host != "" {
		t.Errorf("expected empty hostname, got %q", host)
	}
}
