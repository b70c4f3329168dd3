package model

import "time"

// Environment represents a deployable environment (local, dev, prod).
// It selects the provider driver and carries the infrastructure shape
// shared by all resources provisioned for that environment.
type Environment struct {
	ID        string
	Name      string // e.g., "local", "dev", "prod"
	Driver    string // e.g., "eks", "kind"
	Region    string // AWS region for cloud drivers, ignored by local drivers
	Messaging *Messaging
	Storage   *Storage
	Secrets   *SecretSync
	Telemetry *Telemetry
	Settings  map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Messaging describes the message transport provisioned for an environment.
// Kind selects the backend; MSK settings are ignored for kind "sqs" and
// queue settings are ignored for kind "msk".
type Messaging struct {
	Kind         string // "msk", "sqs" or "kafka" (in-cluster, local driver)
	KafkaVersion string
	Brokers      int
	InstanceType string
	VolumeSizeGB int
	Topics       []Topic
	Queues       []Queue
}

// Topic is a Kafka topic created on the MSK or in-cluster Kafka backend.
type Topic struct {
	Name       string
	Partitions int
}

// Queue is an SQS queue; when DeadLetter is true a companion DLQ is
// provisioned with the given max receive count.
type Queue struct {
	Name              string
	VisibilityTimeout int // seconds
	DeadLetter        bool
	MaxReceiveCount   int
}

// Storage describes the object storage buckets for an environment.
type Storage struct {
	Buckets []Bucket
}

// Bucket is an S3 bucket (MinIO bucket on the local driver).
type Bucket struct {
	Name       string
	Versioned  bool
	ExpireDays int // 0 disables lifecycle expiry
}

// SecretSync describes secrets synchronization from the cloud secret
// store into Kubernetes Secrets via the External Secrets Operator.
type SecretSync struct {
	RefreshInterval string // e.g., "1h"
	Entries         []SecretEntry
}

// SecretEntry maps one source secret to one target Kubernetes Secret.
type SecretEntry struct {
	Name         string // source secret name in the cloud secret store
	TargetSecret string // Kubernetes Secret name
	Namespace    string
}

// Telemetry describes the OpenTelemetry collection setup.
type Telemetry struct {
	CollectorVersion string
	Endpoint         string  // OTLP export endpoint for the collector
	SampleRatio      float64 // trace sampling ratio, 0..1
}
