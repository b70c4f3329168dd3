package cluster

import (
	"context"

	"github.com/searchops/searchops/domain/model"
)

// KubeconfigInput identifies the cluster to export credentials for.
type KubeconfigInput struct {
	ClusterID string `json:"cluster_id"`
}

// KubeconfigOutput carries the kubeconfig bytes.
type KubeconfigOutput struct {
	Kubeconfig []byte `json:"kubeconfig"`
}

// Kubeconfig returns the admin kubeconfig for a cluster.
func (u *UseCase) Kubeconfig(ctx context.Context, in *KubeconfigInput) (*KubeconfigOutput, error) {
	if in == nil || in.ClusterID == "" {
		return nil, model.ErrClusterInvalid
	}

	c, err := u.Repos.Cluster.Get(ctx, in.ClusterID)
	if err != nil {
		return nil, err
	}

	kc, err := u.ClusterPort.Kubeconfig(ctx, c)
	if err != nil {
		return nil, err
	}
	return &KubeconfigOutput{Kubeconfig: kc}, nil
}
