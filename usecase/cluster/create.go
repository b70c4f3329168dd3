package cluster

import (
	"context"
	"time"

	"github.com/searchops/searchops/domain/model"
)

// CreateInput contains data to create a cluster.
type CreateInput struct {
	// Name is the cluster name.
	Name string `json:"name"`
	// EnvironmentID references the environment.
	EnvironmentID string `json:"environment_id"`
	// Existing marks a cluster not managed by this tool.
	Existing bool `json:"existing"`
	// Version is the requested Kubernetes version.
	Version string `json:"version"`
	// NodeCount is the managed node group size.
	NodeCount int `json:"node_count"`
	// NodeSize is the node instance type.
	NodeSize string `json:"node_size"`
}

// CreateOutput wraps the created cluster.
type CreateOutput struct {
	// Cluster is the new cluster entity.
	Cluster *model.Cluster `json:"cluster"`
}

// Create persists a new cluster.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.Name == "" {
		return nil, model.ErrClusterInvalid
	}
	if in.EnvironmentID != "" {
		if _, err := u.Repos.Environment.Get(ctx, in.EnvironmentID); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	c := &model.Cluster{
		Name:          in.Name,
		EnvironmentID: in.EnvironmentID,
		Existing:      in.Existing,
		Version:       in.Version,
		NodeCount:     in.NodeCount,
		NodeSize:      in.NodeSize,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.Repos.Cluster.Create(ctx, c); err != nil {
		return nil, err
	}
	return &CreateOutput{Cluster: c}, nil
}
