package searchopscfg

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/searchops/searchops/domain/model"
)

// generateID generates a simple random ID for config-seeded models.
func generateID() (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", bytes), nil
}

// ToModels converts the configuration to domain models with proper references.
// Returns models in the order: environment, cluster, services.
func (r *Root) ToModels() (*model.Environment, *model.Cluster, []*model.Service, error) {
	now := time.Now()

	envID, err := generateID()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to generate environment ID: %w", err)
	}
	clusterID, err := generateID()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to generate cluster ID: %w", err)
	}

	env := &model.Environment{
		ID:        envID,
		Name:      r.Environment.Name,
		Driver:    r.Environment.Driver,
		Region:    r.Environment.Region,
		Messaging: r.Messaging.toModel(),
		Storage:   r.Storage.toModel(),
		Secrets:   r.Secrets.toModel(),
		Telemetry: r.Telemetry.toModel(),
		Settings:  r.Environment.Settings,
		CreatedAt: now,
		UpdatedAt: now,
	}

	cluster := &model.Cluster{
		ID:            clusterID,
		Name:          r.Cluster.Name,
		EnvironmentID: envID,
		Existing:      r.Cluster.Existing,
		Version:       r.Cluster.Version,
		NodeCount:     r.Cluster.NodeCount,
		NodeSize:      r.Cluster.NodeSize,
		Domain:        r.Cluster.Domain,
		Ingress:       r.Cluster.Ingress.toModel(),
		Settings:      r.Cluster.Settings,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	services := make([]*model.Service, 0, len(r.Services))
	for _, svc := range r.Services {
		svcID, err := generateID()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to generate service ID: %w", err)
		}
		services = append(services, svc.toModel(svcID, clusterID, now))
	}

	return env, cluster, services, nil
}

func (i Ingress) toModel() *model.ClusterIngress {
	return &model.ClusterIngress{
		Controller:     i.Controller,
		Namespace:      i.Namespace,
		ServiceAccount: i.ServiceAccount,
		Scheme:         i.Scheme,
		CertificateARN: i.CertificateARN,
	}
}

func (m Messaging) toModel() *model.Messaging {
	out := &model.Messaging{
		Kind:         m.Kind,
		KafkaVersion: m.KafkaVersion,
		Brokers:      m.Brokers,
		InstanceType: m.InstanceType,
		VolumeSizeGB: m.VolumeSizeGB,
	}
	for _, t := range m.Topics {
		out.Topics = append(out.Topics, model.Topic{Name: t.Name, Partitions: t.Partitions})
	}
	for _, q := range m.Queues {
		out.Queues = append(out.Queues, model.Queue{
			Name:              q.Name,
			VisibilityTimeout: q.VisibilityTimeout,
			DeadLetter:        q.DeadLetter,
			MaxReceiveCount:   q.MaxReceiveCount,
		})
	}
	return out
}

func (s Storage) toModel() *model.Storage {
	out := &model.Storage{}
	for _, b := range s.Buckets {
		out.Buckets = append(out.Buckets, model.Bucket{
			Name:       b.Name,
			Versioned:  b.Versioned,
			ExpireDays: b.ExpireDays,
		})
	}
	return out
}

func (s Secrets) toModel() *model.SecretSync {
	out := &model.SecretSync{RefreshInterval: s.RefreshInterval}
	for _, e := range s.Entries {
		out.Entries = append(out.Entries, model.SecretEntry{
			Name:         e.Name,
			TargetSecret: e.TargetSecret,
			Namespace:    e.Namespace,
		})
	}
	return out
}

func (t Telemetry) toModel() *model.Telemetry {
	return &model.Telemetry{
		CollectorVersion: t.CollectorVersion,
		Endpoint:         t.Endpoint,
		SampleRatio:      t.SampleRatio,
	}
}

func (s Service) toModel(id, clusterID string, now time.Time) *model.Service {
	out := &model.Service{
		ID:             id,
		Name:           s.Name,
		ClusterID:      clusterID,
		Image:          s.Image,
		Port:           s.Port,
		Replicas:       s.Replicas,
		ServiceAccount: s.ServiceAccount,
		Env:            s.Env,
		Resources:      s.Resources,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if s.Ingress != nil {
		out.Ingress = &model.ServiceIngress{Host: s.Ingress.Host, PathPrefix: s.Ingress.PathPrefix}
	}
	return out
}
