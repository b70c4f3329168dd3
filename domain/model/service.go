package model

import "time"

// Service represents one of the application services deployed per
// environment (reader, writer, indexer).
type Service struct {
	ID             string
	Name           string
	ClusterID      string // references Cluster
	Image          string
	Port           int
	Replicas       int
	ServiceAccount string
	Env            map[string]string
	Resources      map[string]string // pod resources (e.g., cpu, memory)
	Ingress        *ServiceIngress
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ServiceIngress exposes a service through the cluster ingress.
type ServiceIngress struct {
	Host       string
	PathPrefix string
}
