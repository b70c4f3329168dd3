package searchopscfg

import "testing"

func TestToModels(t *testing.T) {
	cfg := validConfig()
	cfg.Secrets = Secrets{
		RefreshInterval: "1h",
		Entries:         []SecretEntry{{Name: "app", TargetSecret: "app-secrets"}},
	}
	cfg.Telemetry = Telemetry{CollectorVersion: "0.102.1", SampleRatio: 0.5}
	cfg.Services[0].Ingress = &ServiceIngress{Host: "search.example.com", PathPrefix: "/"}

	env, cluster, services, err := cfg.ToModels()
	if err != nil {
		t.Fatalf("ToModels returned error: %v", err)
	}

	if env.ID == "" {
		t.Error("environment ID not generated")
	}
	if env.Name != "dev" || env.Driver != "eks" || env.Region != "us-west-2" {
		t.Errorf("unexpected environment: %+v", env)
	}
	if env.Messaging == nil || env.Messaging.Kind != "msk" || len(env.Messaging.Topics) != 1 {
		t.Errorf("unexpected messaging: %+v", env.Messaging)
	}
	if env.Storage == nil || len(env.Storage.Buckets) != 1 {
		t.Errorf("unexpected storage: %+v", env.Storage)
	}
	if env.Secrets == nil || env.Secrets.RefreshInterval != "1h" || len(env.Secrets.Entries) != 1 {
		t.Errorf("unexpected secrets: %+v", env.Secrets)
	}
	if env.Telemetry == nil || env.Telemetry.SampleRatio != 0.5 {
		t.Errorf("unexpected telemetry: %+v", env.Telemetry)
	}

	if cluster.EnvironmentID != env.ID {
		t.Errorf("cluster does not reference environment: %s != %s", cluster.EnvironmentID, env.ID)
	}
	if cluster.Ingress == nil || cluster.Ingress.Controller != "alb" {
		t.Errorf("unexpected cluster ingress: %+v", cluster.Ingress)
	}

	if len(services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(services))
	}
	for _, s := range services {
		if s.ClusterID != cluster.ID {
			t.Errorf("service %s does not reference cluster", s.Name)
		}
		if s.ID == "" {
			t.Errorf("service %s ID not generated", s.Name)
		}
	}
	if services[0].Ingress == nil || services[0].Ingress.Host != "search.example.com" {
		t.Errorf("unexpected reader ingress: %+v", services[0].Ingress)
	}
	if services[1].Ingress != nil {
		t.Errorf("writer should have no ingress: %+v", services[1].Ingress)
	}
}

func TestGenerateID_Unique(t *testing.T) {
	a, err := generateID()
	if err != nil {
		t.Fatalf("generateID returned error: %v", err)
	}
	b, err := generateID()
	if err != nil {
		t.Fatalf("generateID returned error: %v", err)
	}
	if a == b {
		t.Errorf("expected distinct IDs, got %s twice", a)
	}
	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(a))
	}
}
