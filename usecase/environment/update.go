package environment

import (
	"context"
	"time"

	"github.com/searchops/searchops/domain/model"
)

type UpdateCommand struct {
	ID     string
	Name   *string
	Driver *string
	Region *string
}

func (u *UseCase) Update(ctx context.Context, cmd UpdateCommand) (*model.Environment, error) {
	if cmd.ID == "" {
		return nil, model.ErrEnvironmentInvalid
	}
	existing, err := u.Repos.Environment.Get(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	changed := false
	if cmd.Name != nil && *cmd.Name != "" && existing.Name != *cmd.Name {
		existing.Name = *cmd.Name
		changed = true
	}
	if cmd.Driver != nil && *cmd.Driver != "" && existing.Driver != *cmd.Driver {
		existing.Driver = *cmd.Driver
		changed = true
	}
	if cmd.Region != nil && existing.Region != *cmd.Region {
		existing.Region = *cmd.Region
		changed = true
	}
	if !changed {
		return existing, nil
	}
	existing.UpdatedAt = time.Now().UTC()
	if err := u.Repos.Environment.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
