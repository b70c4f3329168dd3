package providerdrv

import (
	"context"
	"fmt"

	"github.com/searchops/searchops/domain/model"
)

// stackPortAdapter implements model.StackPort backed by provider drivers.
type stackPortAdapter struct{}

// NewStackPort creates a model.StackPort that resolves a driver from the
// environment and delegates each operation to it.
func NewStackPort() model.StackPort {
	return &stackPortAdapter{}
}

func resolveDriver(env *model.Environment) (Driver, error) {
	factory, exists := GetDriverFactory(env.Driver)
	if !exists {
		return nil, fmt.Errorf("unknown provider driver: %s", env.Driver)
	}
	drv, err := factory(env)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver %s: %w", env.Driver, err)
	}
	return drv, nil
}

func (a *stackPortAdapter) Preview(ctx context.Context, env *model.Environment, cluster *model.Cluster, services []*model.Service) (*model.StackSummary, error) {
	drv, err := resolveDriver(env)
	if err != nil {
		return nil, err
	}
	return drv.StackPreview(ctx, env, cluster, services)
}

func (a *stackPortAdapter) Up(ctx context.Context, env *model.Environment, cluster *model.Cluster, services []*model.Service) (*model.StackSummary, error) {
	drv, err := resolveDriver(env)
	if err != nil {
		return nil, err
	}
	return drv.StackUp(ctx, env, cluster, services)
}

func (a *stackPortAdapter) Destroy(ctx context.Context, env *model.Environment, cluster *model.Cluster) error {
	drv, err := resolveDriver(env)
	if err != nil {
		return err
	}
	return drv.StackDestroy(ctx, env, cluster)
}

func (a *stackPortAdapter) Outputs(ctx context.Context, env *model.Environment) (map[string]string, error) {
	drv, err := resolveDriver(env)
	if err != nil {
		return nil, err
	}
	return drv.StackOutputs(ctx, env)
}
