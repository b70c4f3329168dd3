package environment

import (
	"context"
	"fmt"

	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/logging"
)

// DeployInput represents a command to deploy an environment end to end.
type DeployInput struct {
	// EnvironmentID identifies the environment.
	EnvironmentID string `json:"environment_id"`
	// SkipProvision skips cluster provisioning and installation, only
	// converging the resource stack.
	SkipProvision bool `json:"skip_provision"`
}

// DeployOutput reports the stack convergence result.
type DeployOutput struct {
	Summary *model.StackSummary `json:"summary"`
}

// Deploy provisions the cluster if needed, installs the in-cluster
// infrastructure and converges the environment's resource stack.
func (u *UseCase) Deploy(ctx context.Context, in *DeployInput) (*DeployOutput, error) {
	if in == nil || in.EnvironmentID == "" {
		return nil, model.ErrEnvironmentInvalid
	}
	logger := logging.FromContext(ctx)

	env, err := u.Repos.Environment.Get(ctx, in.EnvironmentID)
	if err != nil {
		return nil, err
	}
	cluster, err := u.clusterFor(ctx, env)
	if err != nil {
		return nil, err
	}
	services, err := u.servicesFor(ctx, cluster)
	if err != nil {
		return nil, err
	}

	if !in.SkipProvision {
		logger.Info(ctx, "provisioning cluster", "environment", env.Name, "cluster", cluster.Name)
		if err := u.ClusterPort.Provision(ctx, cluster); err != nil {
			return nil, fmt.Errorf("provision cluster: %w", err)
		}
		logger.Info(ctx, "installing in-cluster components", "environment", env.Name)
		if err := u.ClusterPort.Install(ctx, cluster); err != nil {
			return nil, fmt.Errorf("install in-cluster components: %w", err)
		}
	}

	logger.Info(ctx, "converging resource stack", "environment", env.Name, "services", len(services))
	summary, err := u.StackPort.Up(ctx, env, cluster, services)
	if err != nil {
		return nil, fmt.Errorf("stack up: %w", err)
	}
	return &DeployOutput{Summary: summary}, nil
}
