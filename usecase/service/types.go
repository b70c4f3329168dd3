package service

import (
	"context"
	"fmt"

	"github.com/searchops/searchops/domain"
	"github.com/searchops/searchops/domain/model"
)

// Repos holds repositories needed for service use cases.
type Repos struct {
	Environment domain.EnvironmentRepository
	Cluster     domain.ClusterRepository
	Service     domain.ServiceRepository
}

// UseCase wires repositories and ports needed for service use cases.
type UseCase struct {
	Repos       *Repos
	ClusterPort model.ClusterPort
}

// environmentFor resolves the environment a service is deployed to.
func (u *UseCase) environmentFor(ctx context.Context, svc *model.Service) (*model.Environment, *model.Cluster, error) {
	if svc.ClusterID == "" {
		return nil, nil, fmt.Errorf("service %s has no cluster: %w", svc.Name, model.ErrServiceInvalid)
	}
	cluster, err := u.Repos.Cluster.Get(ctx, svc.ClusterID)
	if err != nil {
		return nil, nil, err
	}
	if cluster.EnvironmentID == "" {
		return nil, nil, fmt.Errorf("cluster %s has no environment: %w", cluster.Name, model.ErrClusterInvalid)
	}
	env, err := u.Repos.Environment.Get(ctx, cluster.EnvironmentID)
	if err != nil {
		return nil, nil, err
	}
	return env, cluster, nil
}
