package environment

import (
	"context"
	"time"

	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/naming"
)

// CreateInput contains data to create an environment.
type CreateInput struct {
	// Name is the environment name (e.g., "dev").
	Name string `json:"name"`
	// Driver selects the provider driver ("eks" or "kind").
	Driver string `json:"driver"`
	// Region is the AWS region for cloud drivers.
	Region string `json:"region"`
}

// CreateOutput wraps the created environment.
type CreateOutput struct {
	// Environment is the new environment entity.
	Environment *model.Environment `json:"environment"`
}

// Create persists a new environment.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.Name == "" || in.Driver == "" {
		return nil, model.ErrEnvironmentInvalid
	}
	if err := naming.ValidateEnvironmentName(in.Name); err != nil {
		return nil, model.ErrEnvironmentInvalid
	}
	now := time.Now().UTC()
	e := &model.Environment{
		Name:      in.Name,
		Driver:    in.Driver,
		Region:    in.Region,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.Repos.Environment.Create(ctx, e); err != nil {
		return nil, err
	}
	return &CreateOutput{Environment: e}, nil
}
