package searchopscfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "searchops.yml")

	content := `
version: v1
environment:
  name: dev
  driver: eks
  region: us-west-2
cluster:
  name: search-dev
  existing: false
  version: "1.30"
  nodeCount: 2
  nodeSize: t3.medium
  domain: search.example.com
  ingress:
    controller: alb
    scheme: internet-facing
messaging:
  kind: msk
  kafkaVersion: "3.6.0"
  brokers: 3
  instanceType: kafka.m5.large
  volumeSizeGB: 100
  topics:
    - name: documents
      partitions: 6
storage:
  buckets:
    - name: segments
      versioned: true
      expireDays: 30
secrets:
  refreshInterval: 1h
  entries:
    - name: app
      targetSecret: app-secrets
telemetry:
  collectorVersion: 0.102.1
  sampleRatio: 0.25
services:
  - name: reader
    image: ghcr.io/example/reader:latest
    port: 8080
    replicas: 2
    ingress:
      host: search.example.com
      pathPrefix: /
  - name: writer
    image: ghcr.io/example/writer:latest
    port: 8080
  - name: indexer
    image: ghcr.io/example/indexer:latest
    port: 8080
    serviceAccount: indexer
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Version != "v1" {
		t.Errorf("expected version v1, got %s", cfg.Version)
	}
	if cfg.Environment.Name != "dev" || cfg.Environment.Driver != "eks" {
		t.Errorf("unexpected environment: %+v", cfg.Environment)
	}
	if cfg.Cluster.NodeCount != 2 {
		t.Errorf("expected nodeCount 2, got %d", cfg.Cluster.NodeCount)
	}
	if cfg.Messaging.Kind != "msk" || len(cfg.Messaging.Topics) != 1 {
		t.Errorf("unexpected messaging: %+v", cfg.Messaging)
	}
	if len(cfg.Storage.Buckets) != 1 || cfg.Storage.Buckets[0].Name != "segments" {
		t.Errorf("unexpected storage: %+v", cfg.Storage)
	}
	if len(cfg.Secrets.Entries) != 1 || cfg.Secrets.Entries[0].TargetSecret != "app-secrets" {
		t.Errorf("unexpected secrets: %+v", cfg.Secrets)
	}
	if cfg.Telemetry.SampleRatio != 0.25 {
		t.Errorf("expected sampleRatio 0.25, got %v", cfg.Telemetry.SampleRatio)
	}
	if len(cfg.Services) != 3 {
		t.Fatalf("expected 3 services, got %d", len(cfg.Services))
	}
	if cfg.Services[0].Ingress == nil || cfg.Services[0].Ingress.Host != "search.example.com" {
		t.Errorf("unexpected reader ingress: %+v", cfg.Services[0].Ingress)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "searchops.yml")
	if err := os.WriteFile(path, []byte("environment: [broken"), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid yaml")
	}
	if !strings.Contains(err.Error(), "unmarshal") {
		t.Errorf("unexpected error: %v", err)
	}
}
