package cluster

import (
	"context"

	"github.com/searchops/searchops/domain/model"
)

// List returns all known clusters.
func (u *UseCase) List(ctx context.Context) ([]*model.Cluster, error) {
	return u.Repos.Cluster.List(ctx)
}
