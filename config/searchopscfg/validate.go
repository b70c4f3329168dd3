package searchopscfg

import (
	"fmt"

	"github.com/searchops/searchops/internal/naming"
)

// Validate performs semantic validation on the configuration tree.
func (r *Root) Validate() error {
	if err := r.Environment.validate(); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if err := r.Cluster.validate(); err != nil {
		return fmt.Errorf("cluster: %w", err)
	}
	if err := r.Messaging.validate(); err != nil {
		return fmt.Errorf("messaging: %w", err)
	}
	// In-cluster Kafka is a local stand-in; on AWS the managed broker
	// is MSK.
	if r.Environment.Driver == "eks" && r.Messaging.Kind == "kafka" {
		return fmt.Errorf("messaging: kind kafka requires the kind driver; use msk with eks")
	}
	if err := r.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := r.validateServices(); err != nil {
		return err
	}
	return nil
}

func (e *Env) validate() error {
	if err := naming.ValidateEnvironmentName(e.Name); err != nil {
		return err
	}
	if e.Driver == "" {
		return fmt.Errorf("driver is required")
	}
	if e.Driver == "eks" && e.Region == "" {
		return fmt.Errorf("region is required for the eks driver")
	}
	return nil
}

func (c *Cluster) validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !c.Existing && c.NodeCount < 1 {
		return fmt.Errorf("nodeCount must be at least 1")
	}
	switch c.Ingress.Controller {
	case "", "alb", "nginx":
	default:
		return fmt.Errorf("ingress.controller: unsupported controller %q", c.Ingress.Controller)
	}
	return nil
}

func (m *Messaging) validate() error {
	switch m.Kind {
	case "", "msk", "sqs", "kafka":
	default:
		return fmt.Errorf("kind: unsupported messaging kind %q", m.Kind)
	}
	if m.Kind == "msk" || m.Kind == "kafka" {
		if len(m.Queues) > 0 {
			return fmt.Errorf("queues cannot be specified for kind %q", m.Kind)
		}
		seen := make(map[string]struct{}, len(m.Topics))
		for i, topic := range m.Topics {
			if topic.Name == "" {
				return fmt.Errorf("topics[%d].name is required", i)
			}
			if _, exists := seen[topic.Name]; exists {
				return fmt.Errorf("topics[%d].name: duplicate topic name %q", i, topic.Name)
			}
			seen[topic.Name] = struct{}{}
		}
	}
	if m.Kind == "sqs" {
		if len(m.Topics) > 0 {
			return fmt.Errorf("topics cannot be specified for kind sqs")
		}
		seen := make(map[string]struct{}, len(m.Queues))
		for i, queue := range m.Queues {
			if queue.Name == "" {
				return fmt.Errorf("queues[%d].name is required", i)
			}
			if _, exists := seen[queue.Name]; exists {
				return fmt.Errorf("queues[%d].name: duplicate queue name %q", i, queue.Name)
			}
			seen[queue.Name] = struct{}{}
			if queue.DeadLetter && queue.MaxReceiveCount < 1 {
				return fmt.Errorf("queues[%d].maxReceiveCount must be at least 1 when deadLetter is set", i)
			}
		}
	}
	return nil
}

func (s *Storage) validate() error {
	seen := make(map[string]struct{}, len(s.Buckets))
	for i, bucket := range s.Buckets {
		if err := naming.ValidateBucketName(bucket.Name); err != nil {
			return fmt.Errorf("buckets[%d].name: %w", i, err)
		}
		if _, exists := seen[bucket.Name]; exists {
			return fmt.Errorf("buckets[%d].name: duplicate bucket name %q", i, bucket.Name)
		}
		seen[bucket.Name] = struct{}{}
	}
	return nil
}

func (r *Root) validateServices() error {
	seen := make(map[string]struct{}, len(r.Services))
	for i, svc := range r.Services {
		if err := naming.ValidateServiceName(svc.Name); err != nil {
			return fmt.Errorf("services[%d].name: %w", i, err)
		}
		if _, exists := seen[svc.Name]; exists {
			return fmt.Errorf("services[%d].name: duplicate service name %q", i, svc.Name)
		}
		seen[svc.Name] = struct{}{}
		if svc.Port < 1 || svc.Port > 65535 {
			return fmt.Errorf("services[%d].port: invalid port %d", i, svc.Port)
		}
	}
	return nil
}
