package cluster

import (
	"context"
	"fmt"
)

// DeleteInput identifies the cluster to remove.
type DeleteInput struct {
	ClusterID string `json:"cluster_id"`
}

// DeleteOutput is empty; delete has no payload.
type DeleteOutput struct{}

// Delete removes a cluster record. The deployed cluster, if any, is
// untouched; Deprovision handles that. An empty ID is a no-op so
// repeated deletes stay idempotent.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if in == nil || in.ClusterID == "" {
		return &DeleteOutput{}, nil
	}
	if err := u.Repos.Cluster.Delete(ctx, in.ClusterID); err != nil {
		return nil, fmt.Errorf("delete cluster %s: %w", in.ClusterID, err)
	}
	return &DeleteOutput{}, nil
}
