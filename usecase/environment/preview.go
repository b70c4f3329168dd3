package environment

import (
	"context"

	"github.com/searchops/searchops/domain/model"
)

// PreviewInput represents a command to preview a deploy.
type PreviewInput struct {
	// EnvironmentID identifies the environment.
	EnvironmentID string `json:"environment_id"`
}

// PreviewOutput reports the changes a deploy would make.
type PreviewOutput struct {
	Summary *model.StackSummary `json:"summary"`
}

// Preview shows the resource changes a Deploy would make without
// applying anything.
func (u *UseCase) Preview(ctx context.Context, in *PreviewInput) (*PreviewOutput, error) {
	if in == nil || in.EnvironmentID == "" {
		return nil, model.ErrEnvironmentInvalid
	}
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
	summary, err := u.StackPort.Preview(ctx, env, cluster, services)
	if err != nil {
		return nil, err
	}
	return &PreviewOutput{Summary: summary}, nil
}
