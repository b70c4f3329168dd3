package providerdrv

import (
	"context"
	"fmt"

	"github.com/searchops/searchops/domain"
	"github.com/searchops/searchops/domain/model"
)

// clusterPortAdapter implements model.ClusterPort backed by provider drivers.
type clusterPortAdapter struct {
	environments domain.EnvironmentRepository
}

// NewClusterPort creates a model.ClusterPort that resolves a driver from
// the cluster's environment and delegates each operation to it.
func NewClusterPort(environments domain.EnvironmentRepository) model.ClusterPort {
	return &clusterPortAdapter{environments: environments}
}

func (a *clusterPortAdapter) resolve(ctx context.Context, cluster *model.Cluster) (*model.Environment, Driver, error) {
	env, err := a.environments.Get(ctx, cluster.EnvironmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get environment %s: %w", cluster.EnvironmentID, err)
	}
	factory, exists := GetDriverFactory(env.Driver)
	if !exists {
		return nil, nil, fmt.Errorf("unknown provider driver: %s", env.Driver)
	}
	drv, err := factory(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create driver %s: %w", env.Driver, err)
	}
	return env, drv, nil
}

func (a *clusterPortAdapter) Status(ctx context.Context, cluster *model.Cluster) (*model.ClusterStatus, error) {
	env, drv, err := a.resolve(ctx, cluster)
	if err != nil {
		return nil, err
	}
	return drv.ClusterStatus(ctx, env, cluster)
}

func (a *clusterPortAdapter) Provision(ctx context.Context, cluster *model.Cluster) error {
	env, drv, err := a.resolve(ctx, cluster)
	if err != nil {
		return err
	}
	return drv.ClusterProvision(ctx, env, cluster)
}

func (a *clusterPortAdapter) Deprovision(ctx context.Context, cluster *model.Cluster) error {
	env, drv, err := a.resolve(ctx, cluster)
	if err != nil {
		return err
	}
	return drv.ClusterDeprovision(ctx, env, cluster)
}

func (a *clusterPortAdapter) Install(ctx context.Context, cluster *model.Cluster) error {
	env, drv, err := a.resolve(ctx, cluster)
	if err != nil {
		return err
	}
	return drv.ClusterInstall(ctx, env, cluster)
}

func (a *clusterPortAdapter) Uninstall(ctx context.Context, cluster *model.Cluster) error {
	env, drv, err := a.resolve(ctx, cluster)
	if err != nil {
		return err
	}
	return drv.ClusterUninstall(ctx, env, cluster)
}

func (a *clusterPortAdapter) Kubeconfig(ctx context.Context, cluster *model.Cluster) ([]byte, error) {
	env, drv, err := a.resolve(ctx, cluster)
	if err != nil {
		return nil, err
	}
	return drv.ClusterKubeconfig(ctx, env, cluster)
}
