package service

import (
	"context"
	"errors"
	"testing"

	"github.com/searchops/searchops/adapters/store/inmem"
	"github.com/searchops/searchops/domain/model"
)

func newTestUseCase(t *testing.T) (*UseCase, string) {
	t.Helper()
	ctx := context.Background()
	envs := inmem.NewEnvironmentRepository()
	clusters := inmem.NewClusterRepository()
	services := inmem.NewServiceRepository()

	env := &model.Environment{Name: "dev", Driver: "eks", Region: "us-west-2"}
	if err := envs.Create(ctx, env); err != nil {
		t.Fatalf("seed environment: %v", err)
	}
	cluster := &model.Cluster{Name: "search-dev", EnvironmentID: env.ID}
	if err := clusters.Create(ctx, cluster); err != nil {
		t.Fatalf("seed cluster: %v", err)
	}

	u := &UseCase{Repos: &Repos{Environment: envs, Cluster: clusters, Service: services}}
	return u, cluster.ID
}

func TestCreateGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	u, clusterID := newTestUseCase(t)

	created, err := u.Create(ctx, &CreateInput{
		Name:      "reader",
		ClusterID: clusterID,
		Image:     "ghcr.io/searchops/reader:1.0",
		Port:      8080,
		Replicas:  2,
		Env:       map[string]string{"LOG_LEVEL": "info"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Service.ID == "" {
		t.Error("expected generated service ID")
	}

	got, err := u.Get(ctx, created.Service.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "reader" || got.Port != 8080 {
		t.Errorf("unexpected service: %+v", got)
	}

	image := "ghcr.io/searchops/reader:1.1"
	updated, err := u.Update(ctx, UpdateCommand{ID: created.Service.ID, Image: &image})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Image != image {
		t.Errorf("expected image %q, got %q", image, updated.Image)
	}

	list, err := u.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 service, got %d", len(list))
	}

	if _, err := u.Delete(ctx, &DeleteInput{ServiceID: created.Service.ID}); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := u.Get(ctx, created.Service.ID); !errors.Is(err, model.ErrServiceNotFound) {
		t.Errorf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	u, clusterID := newTestUseCase(t)
	ctx := context.Background()

	if _, err := u.Create(ctx, &CreateInput{Image: "x:1"}); !errors.Is(err, model.ErrServiceInvalid) {
		t.Errorf("expected ErrServiceInvalid for empty name, got %v", err)
	}
	if _, err := u.Create(ctx, &CreateInput{Name: "reader"}); !errors.Is(err, model.ErrServiceInvalid) {
		t.Errorf("expected ErrServiceInvalid for empty image, got %v", err)
	}
	if _, err := u.Create(ctx, &CreateInput{Name: "reader", Image: "x:1", ClusterID: "missing"}); !errors.Is(err, model.ErrClusterNotFound) {
		t.Errorf("expected ErrClusterNotFound, got %v", err)
	}
	_ = clusterID
}

func TestUpdate_NoChange(t *testing.T) {
	ctx := context.Background()
	u, clusterID := newTestUseCase(t)

	created, err := u.Create(ctx, &CreateInput{Name: "writer", ClusterID: clusterID, Image: "w:1", Port: 8080})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	before := created.Service.UpdatedAt

	samePort := 8080
	updated, err := u.Update(ctx, UpdateCommand{ID: created.Service.ID, Port: &samePort})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.UpdatedAt.Equal(before) {
		t.Error("no-op update must not bump UpdatedAt")
	}
}

func TestEnvironmentFor(t *testing.T) {
	ctx := context.Background()
	u, clusterID := newTestUseCase(t)

	created, err := u.Create(ctx, &CreateInput{Name: "indexer", ClusterID: clusterID, Image: "i:1"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	env, cluster, err := u.environmentFor(ctx, created.Service)
	if err != nil {
		t.Fatalf("environmentFor returned error: %v", err)
	}
	if env.Name != "dev" || cluster.ID != clusterID {
		t.Errorf("unexpected resolution: env=%+v cluster=%+v", env, cluster)
	}

	orphan := &model.Service{Name: "orphan"}
	if _, _, err := u.environmentFor(ctx, orphan); !errors.Is(err, model.ErrServiceInvalid) {
		t.Errorf("expected ErrServiceInvalid, got %v", err)
	}
}
