package main

import (
	"context"

	"github.com/searchops/searchops/adapters/awsapi"
	providerdrv "github.com/searchops/searchops/adapters/drivers/provider"
	"github.com/searchops/searchops/usecase/cluster"
	"github.com/searchops/searchops/usecase/environment"
	"github.com/searchops/searchops/usecase/secret"
	"github.com/searchops/searchops/usecase/service"
	"github.com/spf13/cobra"
)

// buildEnvironmentUseCase creates environment use case with required repositories and ports.
func buildEnvironmentUseCase(cmd *cobra.Command) (*environment.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &environment.UseCase{
		Repos: &environment.Repos{
			Environment: repos.Environment,
			Cluster:     repos.Cluster,
			Service:     repos.Service,
		},
		ClusterPort: providerdrv.NewClusterPort(repos.Environment),
		StackPort:   providerdrv.NewStackPort(),
		NewVerifier: func(ctx context.Context, region string) (environment.Verifier, error) {
			return awsapi.New(ctx, region)
		},
	}, nil
}

// buildClusterUseCase creates cluster use case with required repositories and ports.
func buildClusterUseCase(cmd *cobra.Command) (*cluster.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &cluster.UseCase{
		Repos: &cluster.Repos{
			Environment: repos.Environment,
			Cluster:     repos.Cluster,
		},
		ClusterPort: providerdrv.NewClusterPort(repos.Environment),
	}, nil
}

// buildSecretUseCase creates secret use case with required repositories and ports.
func buildSecretUseCase(cmd *cobra.Command) (*secret.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &secret.UseCase{
		Repos: &secret.Repos{
			Environment: repos.Environment,
			Cluster:     repos.Cluster,
		},
		ClusterPort: providerdrv.NewClusterPort(repos.Environment),
		NewSource: func(ctx context.Context, region string) (secret.Source, error) {
			return awsapi.New(ctx, region)
		},
	}, nil
}

// buildServiceUseCase creates service use case with required repositories and ports.
func buildServiceUseCase(cmd *cobra.Command) (*service.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &service.UseCase{
		Repos: &service.Repos{
			Environment: repos.Environment,
			Cluster:     repos.Cluster,
			Service:     repos.Service,
		},
		ClusterPort: providerdrv.NewClusterPort(repos.Environment),
	}, nil
}
