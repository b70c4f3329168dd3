package environment

import (
	"context"
	"fmt"

	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/logging"
)

// DestroyInput represents a command to tear down an environment.
type DestroyInput struct {
	// EnvironmentID identifies the environment.
	EnvironmentID string `json:"environment_id"`
	// DeprovisionCluster also removes the cluster itself.
	DeprovisionCluster bool `json:"deprovision_cluster"`
}

// Destroy tears down the environment's resource stack, and optionally
// the cluster.
func (u *UseCase) Destroy(ctx context.Context, in *DestroyInput) error {
	if in == nil || in.EnvironmentID == "" {
		return model.ErrEnvironmentInvalid
	}
	logger := logging.FromContext(ctx)

	env, err := u.Repos.Environment.Get(ctx, in.EnvironmentID)
	if err != nil {
		return err
	}

	cluster, err := u.clusterFor(ctx, env)
	if err != nil {
		return err
	}

	logger.Info(ctx, "destroying resource stack", "environment", env.Name, "cluster", cluster.Name)
	if err := u.StackPort.Destroy(ctx, env, cluster); err != nil {
		return fmt.Errorf("stack destroy: %w", err)
	}

	if in.DeprovisionCluster {
		logger.Info(ctx, "deprovisioning cluster", "environment", env.Name, "cluster", cluster.Name)
		if err := u.ClusterPort.Deprovision(ctx, cluster); err != nil {
			return fmt.Errorf("deprovision cluster: %w", err)
		}
	}
	return nil
}
