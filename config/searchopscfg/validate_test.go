package searchopscfg

import (
	"strings"
	"testing"
)

func validConfig() *Root {
	return &Root{
		Version: "v1",
		Environment: Env{
			Name:   "dev",
			Driver: "eks",
			Region: "us-west-2",
		},
		Cluster: Cluster{
			Name:      "search-dev",
			NodeCount: 2,
			Ingress:   Ingress{Controller: "alb"},
		},
		Messaging: Messaging{
			Kind:   "msk",
			Topics: []Topic{{Name: "documents", Partitions: 6}},
		},
		Storage: Storage{
			Buckets: []BucketSpec{{Name: "segments"}},
		},
		Services: []Service{
			{Name: "reader", Image: "r:latest", Port: 8080},
			{Name: "writer", Image: "w:latest", Port: 8080},
		},
	}
}

func TestValidate_Success(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Root)
		wantErr string
	}{
		{
			name:    "empty environment name",
			mutate:  func(r *Root) { r.Environment.Name = "" },
			wantErr: "environment name must not be empty",
		},
		{
			name:    "environment name not a dns label",
			mutate:  func(r *Root) { r.Environment.Name = "Dev_1" },
			wantErr: "invalid environment name",
		},
		{
			name:    "missing driver",
			mutate:  func(r *Root) { r.Environment.Driver = "" },
			wantErr: "driver is required",
		},
		{
			name: "eks without region",
			mutate: func(r *Root) {
				r.Environment.Region = ""
			},
			wantErr: "region is required",
		},
		{
			name:    "missing cluster name",
			mutate:  func(r *Root) { r.Cluster.Name = "" },
			wantErr: "cluster: name is required",
		},
		{
			name:    "zero node count",
			mutate:  func(r *Root) { r.Cluster.NodeCount = 0 },
			wantErr: "nodeCount must be at least 1",
		},
		{
			name:    "unsupported ingress controller",
			mutate:  func(r *Root) { r.Cluster.Ingress.Controller = "traefik" },
			wantErr: "unsupported controller",
		},
		{
			name:    "unsupported messaging kind",
			mutate:  func(r *Root) { r.Messaging.Kind = "rabbitmq" },
			wantErr: "unsupported messaging kind",
		},
		{
			name: "kafka with eks driver",
			mutate: func(r *Root) {
				r.Messaging = Messaging{Kind: "kafka", Topics: []Topic{{Name: "documents"}}}
			},
			wantErr: "kind kafka requires the kind driver",
		},
		{
			name: "queues with msk",
			mutate: func(r *Root) {
				r.Messaging.Queues = []Queue{{Name: "ingest"}}
			},
			wantErr: "queues cannot be specified",
		},
		{
			name: "topics with sqs",
			mutate: func(r *Root) {
				r.Messaging.Kind = "sqs"
			},
			wantErr: "topics cannot be specified",
		},
		{
			name: "duplicate topic",
			mutate: func(r *Root) {
				r.Messaging.Topics = append(r.Messaging.Topics, Topic{Name: "documents"})
			},
			wantErr: "duplicate topic name",
		},
		{
			name: "dead letter without max receive count",
			mutate: func(r *Root) {
				r.Messaging.Kind = "sqs"
				r.Messaging.Topics = nil
				r.Messaging.Queues = []Queue{{Name: "ingest", DeadLetter: true}}
			},
			wantErr: "maxReceiveCount must be at least 1",
		},
		{
			name: "duplicate bucket",
			mutate: func(r *Root) {
				r.Storage.Buckets = append(r.Storage.Buckets, BucketSpec{Name: "segments"})
			},
			wantErr: "duplicate bucket name",
		},
		{
			name: "duplicate service",
			mutate: func(r *Root) {
				r.Services = append(r.Services, Service{Name: "reader", Image: "r:latest", Port: 8080})
			},
			wantErr: "duplicate service name",
		},
		{
			name: "invalid service port",
			mutate: func(r *Root) {
				r.Services[0].Port = 0
			},
			wantErr: "invalid port",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_SQSQueues(t *testing.T) {
	cfg := validConfig()
	cfg.Messaging = Messaging{
		Kind: "sqs",
		Queues: []Queue{
			{Name: "ingest", VisibilityTimeout: 60, DeadLetter: true, MaxReceiveCount: 5},
			{Name: "reindex"},
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestValidate_KindDriverNeedsNoRegion(t *testing.T) {
	cfg := validConfig()
	cfg.Environment.Driver = "kind"
	cfg.Environment.Region = ""
	cfg.Messaging = Messaging{Kind: "kafka", Topics: []Topic{{Name: "documents"}}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}
