package secret

import (
	"context"

	"github.com/searchops/searchops/domain"
	"github.com/searchops/searchops/domain/model"
)

// Repos groups repositories required by secret use cases.
type Repos struct {
	Environment domain.EnvironmentRepository
	Cluster     domain.ClusterRepository
}

// Source reads secret values from the cloud secret store.
// awsapi.Client implements it for Secrets Manager.
type Source interface {
	GetSecretValues(ctx context.Context, name string) (map[string]string, error)
}

// UseCase provides secret management operations (env / pull).
type UseCase struct {
	Repos       *Repos
	ClusterPort model.ClusterPort
	// NewSource builds a Source for a region. Nil means no cloud secret
	// store is reachable (local driver).
	NewSource func(ctx context.Context, region string) (Source, error)
}
