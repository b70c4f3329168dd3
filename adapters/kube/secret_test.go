package kube

import (
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestSecretContentHash_Deterministic(t *testing.T) {
	a := map[string][]byte{"USER": []byte("searchops"), "PASS": []byte("s3cr3t")}
	b := map[string][]byte{"PASS": []byte("s3cr3t"), "USER": []byte("searchops")}
	if SecretContentHash(a) != SecretContentHash(b) {
		t.Error("hash depends on key order")
	}
	if SecretContentHash(a) == SecretContentHash(map[string][]byte{"USER": []byte("other")}) {
		t.Error("different data produced the same hash")
	}
	if SecretContentHash(nil) != "" {
		t.Error("expected empty hash for empty data")
	}
}

func TestApplySecret_CreateUpdateUnchanged(t *testing.T) {
	ctx := context.Background()
	c := &Client{Clientset: fake.NewSimpleClientset()}
	data := map[string][]byte{"API_KEY": []byte("abc123")}

	action, hash, err := c.ApplySecret(ctx, "searchops-dev", "app-secrets", "pull:searchops/dev/app", data)
	if err != nil {
		t.Fatalf("ApplySecret returned error: %v", err)
	}
	if action != "created" || hash == "" {
		t.Errorf("expected created with hash, got %s %q", action, hash)
	}

	got, err := c.Clientset.CoreV1().Secrets("searchops-dev").Get(ctx, "app-secrets", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get secret: %v", err)
	}
	if got.Annotations[AnnotationSecretContentHash] != hash {
		t.Errorf("content hash annotation not set: %+v", got.Annotations)
	}
	if got.Annotations[AnnotationSecretSource] != "pull:searchops/dev/app" {
		t.Errorf("source annotation not set: %+v", got.Annotations)
	}

	action, _, err = c.ApplySecret(ctx, "searchops-dev", "app-secrets", "pull:searchops/dev/app", data)
	if err != nil {
		t.Fatalf("ApplySecret returned error: %v", err)
	}
	if action != "unchanged" {
		t.Errorf("expected unchanged, got %s", action)
	}

	data["API_KEY"] = []byte("rotated")
	action, hash2, err := c.ApplySecret(ctx, "searchops-dev", "app-secrets", "pull:searchops/dev/app", data)
	if err != nil {
		t.Fatalf("ApplySecret returned error: %v", err)
	}
	if action != "updated" {
		t.Errorf("expected updated, got %s", action)
	}
	if hash2 == hash {
		t.Error("hash did not change with data")
	}
}

func TestDeleteSecret_Missing(t *testing.T) {
	c := &Client{Clientset: fake.NewSimpleClientset()}
	if err := c.DeleteSecret(context.Background(), "searchops-dev", "absent"); err != nil {
		t.Errorf("expected nil for missing secret, got %v", err)
	}
}

func TestGetSecret_Missing(t *testing.T) {
	c := &Client{Clientset: fake.NewSimpleClientset()}
	s, err := c.GetSecret(context.Background(), "searchops-dev", "absent")
	if err != nil {
		t.Fatalf("GetSecret returned error: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil secret, got %+v", s)
	}
}

func TestSecretSynced(t *testing.T) {
	ctx := context.Background()
	c := &Client{Clientset: fake.NewSimpleClientset(&corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "app-secrets", Namespace: "searchops-dev"},
		Data:       map[string][]byte{"API_KEY": []byte("abc")},
	})}

	ok, err := c.SecretSynced(ctx, "searchops-dev", "app-secrets")
	if err != nil {
		t.Fatalf("SecretSynced returned error: %v", err)
	}
	if !ok {
		t.Error("expected synced secret")
	}

	ok, err = c.SecretSynced(ctx, "searchops-dev", "absent")
	if err != nil {
		t.Fatalf("SecretSynced returned error: %v", err)
	}
	if ok {
		t.Error("expected missing secret to be unsynced")
	}
}
