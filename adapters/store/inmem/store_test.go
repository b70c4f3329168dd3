package inmem

import (
	"context"
	"errors"
	"testing"

	"github.com/searchops/searchops/config/searchopscfg"
	"github.com/searchops/searchops/domain/model"
)

func testConfig() *searchopscfg.Root {
	return &searchopscfg.Root{
		Version: "v1",
		Environment: searchopscfg.Env{
			Name:   "local",
			Driver: "kind",
		},
		Cluster: searchopscfg.Cluster{
			Name:      "search-local",
			NodeCount: 1,
			Ingress:   searchopscfg.Ingress{Controller: "nginx"},
		},
		Messaging: searchopscfg.Messaging{
			Kind:   "kafka",
			Topics: []searchopscfg.Topic{{Name: "documents", Partitions: 3}},
		},
		Services: []searchopscfg.Service{
			{Name: "reader", Image: "reader:dev", Port: 8080},
			{Name: "writer", Image: "writer:dev", Port: 8080},
			{Name: "indexer", Image: "indexer:dev", Port: 8080},
		},
	}
}

func TestStore_LoadFromConfig(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	if err := store.LoadFromConfig(ctx, testConfig()); err != nil {
		t.Fatalf("LoadFromConfig returned error: %v", err)
	}

	envs, err := store.EnvironmentRepo.List(ctx)
	if err != nil {
		t.Fatalf("List environments returned error: %v", err)
	}
	if len(envs) != 1 || envs[0].Name != "local" {
		t.Fatalf("unexpected environments: %+v", envs)
	}

	clusters, err := store.ClusterRepo.List(ctx)
	if err != nil {
		t.Fatalf("List clusters returned error: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}
	if clusters[0].EnvironmentID != envs[0].ID {
		t.Errorf("cluster does not reference environment")
	}

	services, err := store.ServiceRepo.List(ctx)
	if err != nil {
		t.Fatalf("List services returned error: %v", err)
	}
	if len(services) != 3 {
		t.Fatalf("expected 3 services, got %d", len(services))
	}
	for _, s := range services {
		if s.ClusterID != clusters[0].ID {
			t.Errorf("service %s does not reference cluster", s.Name)
		}
	}

	if store.ConfigRoot == nil {
		t.Error("ConfigRoot not retained")
	}
}

func TestEnvironmentRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewEnvironmentRepository()

	e := &model.Environment{Name: "dev", Driver: "eks", Region: "us-west-2"}
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if e.ID == "" {
		t.Fatal("Create did not assign an ID")
	}

	got, err := repo.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "dev" {
		t.Errorf("unexpected environment: %+v", got)
	}

	// Returned values are copies, mutation must not leak into the store.
	got.Name = "mutated"
	again, err := repo.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if again.Name != "dev" {
		t.Errorf("mutation leaked into store: %+v", again)
	}

	again.Region = "eu-west-1"
	if err := repo.Update(ctx, again); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	updated, err := repo.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if updated.Region != "eu-west-1" {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := repo.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.Get(ctx, e.ID); !errors.Is(err, model.ErrEnvironmentNotFound) {
		t.Errorf("expected ErrEnvironmentNotFound, got %v", err)
	}
}
