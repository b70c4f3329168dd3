package cluster

import (
	"github.com/searchops/searchops/domain"
	"github.com/searchops/searchops/domain/model"
)

// Repos holds repositories needed for cluster use cases.
type Repos struct {
	Environment domain.EnvironmentRepository
	Cluster     domain.ClusterRepository
}

// UseCase wires repositories and ports needed for cluster use cases.
type UseCase struct {
	Repos       *Repos
	ClusterPort model.ClusterPort
}
