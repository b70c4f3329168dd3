package service

import (
	"context"
	"time"

	"github.com/searchops/searchops/domain/model"
)

// CreateInput contains data to create a service.
type CreateInput struct {
	// Name is the service name (e.g., "reader").
	Name string `json:"name"`
	// ClusterID references the cluster the service deploys to.
	ClusterID string `json:"cluster_id"`
	// Image is the container image reference.
	Image string `json:"image"`
	// Port is the container port serving HTTP.
	Port int `json:"port"`
	// Replicas is the desired replica count; 0 defaults to 1.
	Replicas int `json:"replicas"`
	// ServiceAccount is the pod service account name.
	ServiceAccount string `json:"service_account"`
	// Env holds static environment variables.
	Env map[string]string `json:"env"`
	// Resources holds pod resource requests and limits.
	Resources map[string]string `json:"resources"`
}

// CreateOutput wraps the created service.
type CreateOutput struct {
	// Service is the new service entity.
	Service *model.Service `json:"service"`
}

// Create persists a new service.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.Name == "" || in.Image == "" {
		return nil, model.ErrServiceInvalid
	}
	if in.ClusterID != "" {
		if _, err := u.Repos.Cluster.Get(ctx, in.ClusterID); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	s := &model.Service{
		Name:           in.Name,
		ClusterID:      in.ClusterID,
		Image:          in.Image,
		Port:           in.Port,
		Replicas:       in.Replicas,
		ServiceAccount: in.ServiceAccount,
		Env:            in.Env,
		Resources:      in.Resources,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.Repos.Service.Create(ctx, s); err != nil {
		return nil, err
	}
	return &CreateOutput{Service: s}, nil
}
