package secret

import (
	"context"
	"strings"
	"testing"

	"github.com/searchops/searchops/adapters/store/inmem"
	"github.com/searchops/searchops/domain/model"
)

// fakeSource serves canned secret values by name.
type fakeSource struct {
	secrets map[string]map[string]string
}

func (f *fakeSource) GetSecretValues(ctx context.Context, name string) (map[string]string, error) {
	return f.secrets[name], nil
}

func seedEnvironment(t *testing.T, env *model.Environment) (*Repos, string) {
	t.Helper()
	ctx := context.Background()
	envs := inmem.NewEnvironmentRepository()
	clusters := inmem.NewClusterRepository()
	if err := envs.Create(ctx, env); err != nil {
		t.Fatalf("seed environment: %v", err)
	}
	if err := clusters.Create(ctx, &model.Cluster{Name: "search-dev", EnvironmentID: env.ID}); err != nil {
		t.Fatalf("seed cluster: %v", err)
	}
	return &Repos{Environment: envs, Cluster: clusters}, env.ID
}

func TestEnv_CloudSource(t *testing.T) {
	repos, envID := seedEnvironment(t, &model.Environment{
		Name:   "dev",
		Driver: "eks",
		Region: "us-west-2",
		Secrets: &model.SecretSync{
			Entries: []model.SecretEntry{{Name: "app", TargetSecret: "app-secrets"}},
		},
	})
	src := &fakeSource{secrets: map[string]map[string]string{
		"searchops/dev/app": {"DB_PASSWORD": "hunter2", "API_KEY": "k-123"},
	}}
	u := &UseCase{
		Repos: repos,
		NewSource: func(ctx context.Context, region string) (Source, error) {
			return src, nil
		},
	}

	out, err := u.Env(context.Background(), &EnvInput{EnvironmentID: envID, Entry: "app"})
	if err != nil {
		t.Fatalf("Env returned error: %v", err)
	}
	if out.SecretName != "app-secrets" {
		t.Errorf("unexpected secret name %q", out.SecretName)
	}
	want := "API_KEY=k-123\nDB_PASSWORD=hunter2\n"
	if out.Content != want {
		t.Errorf("unexpected content:\n%s", out.Content)
	}
	if len(out.Keys) != 2 || out.Keys[0] != "API_KEY" {
		t.Errorf("unexpected keys: %v", out.Keys)
	}
}

func TestEnv_SettingsFallback(t *testing.T) {
	repos, envID := seedEnvironment(t, &model.Environment{
		Name:   "local",
		Driver: "kind",
		Secrets: &model.SecretSync{
			Entries: []model.SecretEntry{{Name: "app", TargetSecret: "app-secrets"}},
		},
		Settings: map[string]string{
			"secret.app.DB_PASSWORD": "localpw",
			"secret.other.IGNORED":   "x",
			"unrelated":              "y",
		},
	})
	// No NewSource: the local driver reads from settings.
	u := &UseCase{Repos: repos}

	out, err := u.Env(context.Background(), &EnvInput{EnvironmentID: envID, Entry: "app"})
	if err != nil {
		t.Fatalf("Env returned error: %v", err)
	}
	if out.Content != "DB_PASSWORD=localpw\n" {
		t.Errorf("unexpected content:\n%s", out.Content)
	}
}

func TestEnv_MissingSource(t *testing.T) {
	repos, envID := seedEnvironment(t, &model.Environment{
		Name:   "local",
		Driver: "kind",
		Secrets: &model.SecretSync{
			Entries: []model.SecretEntry{{Name: "app", TargetSecret: "app-secrets"}},
		},
	})
	u := &UseCase{Repos: repos}

	_, err := u.Env(context.Background(), &EnvInput{EnvironmentID: envID, Entry: "app"})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestEnv_InputValidation(t *testing.T) {
	u := &UseCase{}
	tests := []struct {
		name    string
		in      *EnvInput
		wantErr string
	}{
		{"nil input", nil, "EnvInput is required"},
		{"missing environment", &EnvInput{Entry: "app"}, "EnvironmentID is required"},
		{"missing entry", &EnvInput{EnvironmentID: "e1"}, "Entry is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.Env(context.Background(), tt.in)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPull_InputValidation(t *testing.T) {
	u := &UseCase{}
	tests := []struct {
		name    string
		in      *PullInput
		wantErr string
	}{
		{"nil input", nil, "PullInput is required"},
		{"missing environment", &PullInput{Operation: PullOpSet}, "EnvironmentID is required"},
		{"bad operation", &PullInput{EnvironmentID: "e1", Operation: "rotate"}, "unsupported operation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.Pull(context.Background(), tt.in)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestResolve_EntryFilter(t *testing.T) {
	repos, envID := seedEnvironment(t, &model.Environment{
		Name:   "dev",
		Driver: "eks",
		Region: "us-west-2",
		Secrets: &model.SecretSync{
			Entries: []model.SecretEntry{
				{Name: "app", TargetSecret: "app-secrets"},
				{Name: "broker", TargetSecret: "broker-secrets", Namespace: "messaging"},
			},
		},
	})
	u := &UseCase{Repos: repos}
	ctx := context.Background()

	_, _, entries, err := u.resolve(ctx, envID, "")
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected all entries, got %d", len(entries))
	}

	_, _, entries, err = u.resolve(ctx, envID, "broker")
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Namespace != "messaging" {
		t.Errorf("unexpected entries: %+v", entries)
	}

	if _, _, _, err := u.resolve(ctx, envID, "missing"); err == nil || !strings.Contains(err.Error(), "unknown secret sync entry") {
		t.Errorf("expected unknown entry error, got %v", err)
	}
}

func TestResolve_NoEntries(t *testing.T) {
	repos, envID := seedEnvironment(t, &model.Environment{Name: "dev", Driver: "eks"})
	u := &UseCase{Repos: repos}

	if _, _, _, err := u.resolve(context.Background(), envID, ""); err == nil || !strings.Contains(err.Error(), "no secret sync entries") {
		t.Errorf("expected no entries error, got %v", err)
	}
}
