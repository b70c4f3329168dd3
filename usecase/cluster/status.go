package cluster

import (
	"context"

	"github.com/searchops/searchops/domain/model"
)

// StatusInput identifies the cluster to probe.
type StatusInput struct {
	ClusterID string `json:"cluster_id"`
}

// StatusOutput reports the driver-observed cluster state.
type StatusOutput struct {
	model.ClusterStatus
	ClusterID   string `json:"cluster_id"`
	ClusterName string `json:"cluster_name"`
}

// Status asks the environment driver whether the cluster is provisioned
// and its in-cluster infrastructure installed.
func (u *UseCase) Status(ctx context.Context, in *StatusInput) (*StatusOutput, error) {
	if in == nil || in.ClusterID == "" {
		return nil, model.ErrClusterInvalid
	}
	c, err := u.Repos.Cluster.Get(ctx, in.ClusterID)
	if err != nil {
		return nil, err
	}
	st, err := u.ClusterPort.Status(ctx, c)
	if err != nil {
		return nil, err
	}
	return &StatusOutput{ClusterStatus: *st, ClusterID: c.ID, ClusterName: c.Name}, nil
}
