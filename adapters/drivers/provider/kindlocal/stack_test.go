package kindlocal

import (
	"context"
	"testing"

	"github.com/searchops/searchops/domain/model"
)

func TestLocalSecretData(t *testing.T) {
	env := &model.Environment{
		Name: "local",
		Settings: map[string]string{
			"secret.app.API_KEY":     "dev-key",
			"secret.app.DB_PASSWORD": "dev-pw",
			"secret.broker.TOKEN":    "other",
			"driver.kind.image":      "kindest/node:v1.30.0",
		},
	}
	data := localSecretData(env, "app")
	if len(data) != 2 {
		t.Fatalf("expected 2 keys, got %v", data)
	}
	if string(data["API_KEY"]) != "dev-key" || string(data["DB_PASSWORD"]) != "dev-pw" {
		t.Errorf("unexpected data: %v", data)
	}
	if len(localSecretData(env, "missing")) != 0 {
		t.Error("unknown entry must yield empty data")
	}
}

// A configured cluster name must win over the stack-name fallback on
// every path: StackUp and StackDestroy both resolve through
// clusterName with the environment's cluster, so a destroy tears down
// the cluster the provision created.
func TestClusterName(t *testing.T) {
	d := &driver{envName: "local"}
	if got := d.clusterName(&model.Cluster{Name: "search-local"}); got != "search-local" {
		t.Errorf("configured name not honored: %q", got)
	}
	if got := d.clusterName(&model.Cluster{}); got != "searchops-local" {
		t.Errorf("unexpected fallback for unnamed cluster: %q", got)
	}
	if got := d.clusterName(nil); got != "searchops-local" {
		t.Errorf("unexpected fallback for nil cluster: %q", got)
	}
}

func TestOutputs(t *testing.T) {
	d := &driver{}
	env := &model.Environment{
		Name:      "local",
		Messaging: &model.Messaging{Kind: "kafka", Topics: []model.Topic{{Name: "documents"}}},
		Storage:   &model.Storage{Buckets: []model.Bucket{{Name: "segments"}}},
		Telemetry: &model.Telemetry{SampleRatio: 1},
	}
	outs := d.outputs(env)
	if outs["namespace"] != "searchops-local" {
		t.Errorf("unexpected namespace %q", outs["namespace"])
	}
	if outs["bootstrapBrokers"] != kafkaBootstrapSvc {
		t.Errorf("unexpected brokers %q", outs["bootstrapBrokers"])
	}
	if outs["storageEndpoint"] != minioEndpoint {
		t.Errorf("unexpected storage endpoint %q", outs["storageEndpoint"])
	}
	if outs["bucket:segments"] != "segments" {
		t.Errorf("unexpected bucket output %q", outs["bucket:segments"])
	}
	if outs["otlpEndpoint"] != otelEndpoint {
		t.Errorf("unexpected otlp endpoint %q", outs["otlpEndpoint"])
	}
}

func TestOutputs_SQSHasNoBrokers(t *testing.T) {
	d := &driver{}
	env := &model.Environment{
		Name:      "local",
		Messaging: &model.Messaging{Kind: "sqs"},
	}
	outs := d.outputs(env)
	if _, ok := outs["bootstrapBrokers"]; ok {
		t.Error("sqs messaging must not expose bootstrap brokers")
	}
}

func TestStackPreview_CountsDeclaredResources(t *testing.T) {
	d := &driver{}
	env := &model.Environment{
		Name: "local",
		Secrets: &model.SecretSync{Entries: []model.SecretEntry{
			{Name: "app", TargetSecret: "app-secrets"},
		}},
	}
	services := []*model.Service{
		{Name: "reader"}, {Name: "writer"}, {Name: "indexer"},
	}
	sum, err := d.StackPreview(context.Background(), env, nil, services)
	if err != nil {
		t.Fatalf("StackPreview returned error: %v", err)
	}
	if sum.ResourceChanges["namespace"] != 1 || sum.ResourceChanges["secret"] != 1 || sum.ResourceChanges["workload"] != 3 {
		t.Errorf("unexpected changes: %v", sum.ResourceChanges)
	}
	if sum.Outputs["namespace"] != "searchops-local" {
		t.Errorf("unexpected outputs: %v", sum.Outputs)
	}
}
