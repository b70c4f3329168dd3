package cluster

import (
	"context"
	"time"

	"github.com/searchops/searchops/domain/model"
)

type UpdateCommand struct {
	ID        string
	Name      *string
	Version   *string
	NodeCount *int
	NodeSize  *string
}

func (u *UseCase) Update(ctx context.Context, cmd UpdateCommand) (*model.Cluster, error) {
	if cmd.ID == "" {
		return nil, model.ErrClusterInvalid
	}
	existing, err := u.Repos.Cluster.Get(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	changed := false
	if cmd.Name != nil && *cmd.Name != "" && existing.Name != *cmd.Name {
		existing.Name = *cmd.Name
		changed = true
	}
	if cmd.Version != nil && existing.Version != *cmd.Version {
		existing.Version = *cmd.Version
		changed = true
	}
	if cmd.NodeCount != nil && existing.NodeCount != *cmd.NodeCount {
		existing.NodeCount = *cmd.NodeCount
		changed = true
	}
	if cmd.NodeSize != nil && existing.NodeSize != *cmd.NodeSize {
		existing.NodeSize = *cmd.NodeSize
		changed = true
	}
	if !changed {
		return existing, nil
	}
	existing.UpdatedAt = time.Now().UTC()
	if err := u.Repos.Cluster.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
