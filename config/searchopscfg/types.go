// Package searchopscfg defines the configuration schema (structs) for searchops.yml.
// This package is intended for YAML -> struct deserialization.
// Loading helpers and validations are implemented separately.
package searchopscfg

// Root is the root structure of searchops.yml.
type Root struct {
	Version     string    `yaml:"version"`
	Environment Env       `yaml:"environment"`
	Cluster     Cluster   `yaml:"cluster"`
	Messaging   Messaging `yaml:"messaging"`
	Storage     Storage   `yaml:"storage"`
	Secrets     Secrets   `yaml:"secrets"`
	Telemetry   Telemetry `yaml:"telemetry"`
	Services    []Service `yaml:"services"`
}

// Env selects the provider driver and the environment-wide settings.
type Env struct {
	Name     string            `yaml:"name"`     // RFC1123-compliant DNS label, e.g., "local", "dev", "prod"
	Driver   string            `yaml:"driver"`   // e.g., "eks", "kind"
	Region   string            `yaml:"region"`   // AWS region, ignored by local drivers
	Settings map[string]string `yaml:"settings"` // driver-specific settings
}

// Cluster represents the target Kubernetes cluster configuration.
type Cluster struct {
	Name      string            `yaml:"name"`
	Existing  bool              `yaml:"existing"` // whether to use an existing cluster
	Version   string            `yaml:"version"`  // Kubernetes version
	NodeCount int               `yaml:"nodeCount"`
	NodeSize  string            `yaml:"nodeSize"` // instance type for cloud drivers
	Domain    string            `yaml:"domain"`   // e.g., "search.example.com"
	Ingress   Ingress           `yaml:"ingress"`
	Settings  map[string]string `yaml:"settings"`
}

// Ingress holds cluster-level ingress configuration.
type Ingress struct {
	Controller     string `yaml:"controller"` // "alb" or "nginx"
	Namespace      string `yaml:"namespace"`
	ServiceAccount string `yaml:"serviceAccount"`
	Scheme         string `yaml:"scheme"`         // ALB scheme
	CertificateARN string `yaml:"certificateArn"` // ACM certificate (ALB)
}

// Messaging selects and shapes the message transport.
type Messaging struct {
	Kind         string  `yaml:"kind"` // "msk", "sqs" or "kafka"
	KafkaVersion string  `yaml:"kafkaVersion"`
	Brokers      int     `yaml:"brokers"`
	InstanceType string  `yaml:"instanceType"`
	VolumeSizeGB int     `yaml:"volumeSizeGB"`
	Topics       []Topic `yaml:"topics,omitempty"`
	Queues       []Queue `yaml:"queues,omitempty"`
}

// Topic declares a Kafka topic.
type Topic struct {
	Name       string `yaml:"name"`
	Partitions int    `yaml:"partitions"`
}

// Queue declares an SQS queue.
type Queue struct {
	Name              string `yaml:"name"`
	VisibilityTimeout int    `yaml:"visibilityTimeout"`
	DeadLetter        bool   `yaml:"deadLetter"`
	MaxReceiveCount   int    `yaml:"maxReceiveCount"`
}

// Storage declares object storage buckets.
type Storage struct {
	Buckets []BucketSpec `yaml:"buckets"`
}

// BucketSpec declares one bucket.
type BucketSpec struct {
	Name       string `yaml:"name"`
	Versioned  bool   `yaml:"versioned"`
	ExpireDays int    `yaml:"expireDays"`
}

// Secrets declares secret synchronization entries.
type Secrets struct {
	RefreshInterval string        `yaml:"refreshInterval"`
	Entries         []SecretEntry `yaml:"entries,omitempty"`
}

// SecretEntry maps a cloud secret to a Kubernetes Secret.
type SecretEntry struct {
	Name         string `yaml:"name"`
	TargetSecret string `yaml:"targetSecret"`
	Namespace    string `yaml:"namespace"`
}

// Telemetry configures OpenTelemetry collection.
type Telemetry struct {
	CollectorVersion string  `yaml:"collectorVersion"`
	Endpoint         string  `yaml:"endpoint"`
	SampleRatio      float64 `yaml:"sampleRatio"`
}

// Service declares one of the application services (reader, writer, indexer).
type Service struct {
	Name           string            `yaml:"name"`
	Image          string            `yaml:"image"`
	Port           int               `yaml:"port"`
	Replicas       int               `yaml:"replicas"`
	ServiceAccount string            `yaml:"serviceAccount"`
	Env            map[string]string `yaml:"env,omitempty"`
	Resources      map[string]string `yaml:"resources,omitempty"` // pod resources (e.g., cpu, memory)
	Ingress        *ServiceIngress   `yaml:"ingress,omitempty"`
}

// ServiceIngress exposes a service through the cluster ingress.
type ServiceIngress struct {
	Host       string `yaml:"host"`
	PathPrefix string `yaml:"pathPrefix"`
}
