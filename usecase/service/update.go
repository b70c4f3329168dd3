package service

import (
	"context"
	"time"

	"github.com/searchops/searchops/domain/model"
)

type UpdateCommand struct {
	ID       string
	Name     *string
	Image    *string
	Port     *int
	Replicas *int
	Env      *map[string]string
}

func (u *UseCase) Update(ctx context.Context, cmd UpdateCommand) (*model.Service, error) {
	if cmd.ID == "" {
		return nil, model.ErrServiceInvalid
	}
	existing, err := u.Repos.Service.Get(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	changed := false
	if cmd.Name != nil && *cmd.Name != "" && existing.Name != *cmd.Name {
		existing.Name = *cmd.Name
		changed = true
	}
	if cmd.Image != nil && *cmd.Image != "" && existing.Image != *cmd.Image {
		existing.Image = *cmd.Image
		changed = true
	}
	if cmd.Port != nil && existing.Port != *cmd.Port {
		existing.Port = *cmd.Port
		changed = true
	}
	if cmd.Replicas != nil && existing.Replicas != *cmd.Replicas {
		existing.Replicas = *cmd.Replicas
		changed = true
	}
	if cmd.Env != nil {
		existing.Env = *cmd.Env
		changed = true
	}
	if !changed {
		return existing, nil
	}
	existing.UpdatedAt = time.Now().UTC()
	if err := u.Repos.Service.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
