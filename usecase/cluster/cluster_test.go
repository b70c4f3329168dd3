package cluster

import (
	"context"
	"errors"
	"testing"

	"github.com/searchops/searchops/adapters/store/inmem"
	"github.com/searchops/searchops/domain/model"
)

// fakeClusterPort records which lifecycle operations ran.
type fakeClusterPort struct {
	calls      []string
	status     model.ClusterStatus
	kubeconfig []byte
}

func (f *fakeClusterPort) Status(ctx context.Context, c *model.Cluster) (*model.ClusterStatus, error) {
	f.calls = append(f.calls, "status")
	st := f.status
	return &st, nil
}
func (f *fakeClusterPort) Provision(ctx context.Context, c *model.Cluster) error {
	f.calls = append(f.calls, "provision")
	return nil
}
func (f *fakeClusterPort) Deprovision(ctx context.Context, c *model.Cluster) error {
	f.calls = append(f.calls, "deprovision")
	return nil
}
func (f *fakeClusterPort) Install(ctx context.Context, c *model.Cluster) error {
	f.calls = append(f.calls, "install")
	return nil
}
func (f *fakeClusterPort) Uninstall(ctx context.Context, c *model.Cluster) error {
	f.calls = append(f.calls, "uninstall")
	return nil
}
func (f *fakeClusterPort) Kubeconfig(ctx context.Context, c *model.Cluster) ([]byte, error) {
	f.calls = append(f.calls, "kubeconfig")
	return f.kubeconfig, nil
}

func newTestUseCase(t *testing.T) (*UseCase, *fakeClusterPort, string) {
	t.Helper()
	ctx := context.Background()
	envs := inmem.NewEnvironmentRepository()
	clusters := inmem.NewClusterRepository()

	env := &model.Environment{Name: "dev", Driver: "eks", Region: "us-west-2"}
	if err := envs.Create(ctx, env); err != nil {
		t.Fatalf("seed environment: %v", err)
	}

	port := &fakeClusterPort{}
	u := &UseCase{
		Repos:       &Repos{Environment: envs, Cluster: clusters},
		ClusterPort: port,
	}
	return u, port, env.ID
}

func TestCreateGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	u, _, envID := newTestUseCase(t)

	created, err := u.Create(ctx, &CreateInput{
		Name:          "search-dev",
		EnvironmentID: envID,
		Version:       "1.30",
		NodeCount:     2,
		NodeSize:      "t3.large",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Cluster.ID == "" {
		t.Error("expected generated cluster ID")
	}

	got, err := u.Get(ctx, created.Cluster.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "search-dev" || got.NodeCount != 2 {
		t.Errorf("unexpected cluster: %+v", got)
	}

	count := 3
	updated, err := u.Update(ctx, UpdateCommand{ID: created.Cluster.ID, NodeCount: &count})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.NodeCount != 3 {
		t.Errorf("expected node count 3, got %d", updated.NodeCount)
	}

	if _, err := u.Delete(ctx, &DeleteInput{ClusterID: created.Cluster.ID}); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := u.Get(ctx, created.Cluster.ID); !errors.Is(err, model.ErrClusterNotFound) {
		t.Errorf("expected ErrClusterNotFound, got %v", err)
	}
}

func TestCreate_UnknownEnvironment(t *testing.T) {
	u, _, _ := newTestUseCase(t)
	_, err := u.Create(context.Background(), &CreateInput{Name: "search-dev", EnvironmentID: "missing"})
	if !errors.Is(err, model.ErrEnvironmentNotFound) {
		t.Errorf("expected ErrEnvironmentNotFound, got %v", err)
	}
}

func TestDelete_EmptyIDIsNoop(t *testing.T) {
	u, _, _ := newTestUseCase(t)
	if _, err := u.Delete(context.Background(), &DeleteInput{}); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	u, port, envID := newTestUseCase(t)

	created, err := u.Create(ctx, &CreateInput{Name: "search-dev", EnvironmentID: envID})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	id := created.Cluster.ID

	if err := u.Provision(ctx, ProvisionInput{ID: id}); err != nil {
		t.Fatalf("Provision returned error: %v", err)
	}
	if err := u.Install(ctx, InstallInput{ID: id}); err != nil {
		t.Fatalf("Install returned error: %v", err)
	}
	if err := u.Uninstall(ctx, UninstallInput{ID: id}); err != nil {
		t.Fatalf("Uninstall returned error: %v", err)
	}
	if err := u.Deprovision(ctx, DeprovisionInput{ID: id}); err != nil {
		t.Fatalf("Deprovision returned error: %v", err)
	}

	want := []string{"provision", "install", "uninstall", "deprovision"}
	if len(port.calls) != len(want) {
		t.Fatalf("unexpected calls: %v", port.calls)
	}
	for i := range want {
		if port.calls[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], port.calls[i])
		}
	}
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	u, port, envID := newTestUseCase(t)
	port.status = model.ClusterStatus{Provisioned: true, Installed: true}

	created, err := u.Create(ctx, &CreateInput{Name: "search-dev", EnvironmentID: envID})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	out, err := u.Status(ctx, &StatusInput{ClusterID: created.Cluster.ID})
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if !out.Provisioned || !out.Installed {
		t.Errorf("unexpected status: %+v", out)
	}
	if out.ClusterName != "search-dev" {
		t.Errorf("expected cluster name, got %q", out.ClusterName)
	}
}

func TestKubeconfig(t *testing.T) {
	ctx := context.Background()
	u, port, envID := newTestUseCase(t)
	port.kubeconfig = []byte("apiVersion: v1\nkind: Config\n")

	created, err := u.Create(ctx, &CreateInput{Name: "search-dev", EnvironmentID: envID})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	out, err := u.Kubeconfig(ctx, &KubeconfigInput{ClusterID: created.Cluster.ID})
	if err != nil {
		t.Fatalf("Kubeconfig returned error: %v", err)
	}
	if string(out.Kubeconfig) != string(port.kubeconfig) {
		t.Errorf("unexpected kubeconfig: %q", out.Kubeconfig)
	}

	if _, err := u.Kubeconfig(ctx, &KubeconfigInput{}); !errors.Is(err, model.ErrClusterInvalid) {
		t.Errorf("expected ErrClusterInvalid, got %v", err)
	}
}
