package environment

import (
	"context"
	"fmt"

	"github.com/searchops/searchops/domain"
	"github.com/searchops/searchops/domain/model"
)

// Repos holds repositories needed for environment use cases.
type Repos struct {
	Environment domain.EnvironmentRepository
	Cluster     domain.ClusterRepository
	Service     domain.ServiceRepository
}

// Verifier checks that deployed cloud resources actually exist.
// The eks driver backs it with AWS control-plane calls.
type Verifier interface {
	BucketExists(ctx context.Context, name string) (bool, error)
	QueueExists(ctx context.Context, name string) (bool, error)
}

// UseCase wires repositories and ports needed for environment use cases.
type UseCase struct {
	Repos       *Repos
	ClusterPort model.ClusterPort
	StackPort   model.StackPort
	// NewVerifier builds a Verifier for a region. Nil disables cloud
	// resource verification (local driver).
	NewVerifier func(ctx context.Context, region string) (Verifier, error)
}

// clusterFor resolves the cluster belonging to an environment.
func (u *UseCase) clusterFor(ctx context.Context, env *model.Environment) (*model.Cluster, error) {
	clusters, err := u.Repos.Cluster.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range clusters {
		if c.EnvironmentID == env.ID {
			return c, nil
		}
	}
	return nil, fmt.Errorf("environment %s has no cluster: %w", env.Name, model.ErrClusterNotFound)
}

// servicesFor resolves the services deployed to a cluster.
func (u *UseCase) servicesFor(ctx context.Context, cluster *model.Cluster) ([]*model.Service, error) {
	services, err := u.Repos.Service.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*model.Service
	for _, s := range services {
		if s.ClusterID == cluster.ID {
			out = append(out, s)
		}
	}
	return out, nil
}
