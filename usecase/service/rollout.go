package service

import (
	"context"
	"fmt"

	"github.com/searchops/searchops/adapters/kube"
	"github.com/searchops/searchops/internal/logging"
	"github.com/searchops/searchops/internal/naming"
)

// RolloutInput identifies the service to restart.
type RolloutInput struct {
	// ServiceID is the identifier of the service.
	ServiceID string `json:"service_id"`
}

// RolloutOutput reports the restarted deployment.
type RolloutOutput struct {
	// Deployment is the restarted deployment name.
	Deployment string `json:"deployment"`
	// Namespace is the deployment namespace.
	Namespace string `json:"namespace"`
}

// Rollout triggers a rolling restart of the service's deployment so
// pods pick up refreshed Secrets without a manifest change.
func (u *UseCase) Rollout(ctx context.Context, in *RolloutInput) (*RolloutOutput, error) {
	if in == nil || in.ServiceID == "" {
		return nil, fmt.Errorf("RolloutInput.ServiceID is required")
	}
	svc, err := u.Repos.Service.Get(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	env, cluster, err := u.environmentFor(ctx, svc)
	if err != nil {
		return nil, err
	}
	kubeconfig, err := u.ClusterPort.Kubeconfig(ctx, cluster)
	if err != nil {
		return nil, fmt.Errorf("failed to get cluster kubeconfig: %w", err)
	}
	kcli, err := kube.NewClientFromKubeconfig(ctx, kubeconfig, &kube.Options{UserAgent: "searchops"})
	if err != nil {
		return nil, fmt.Errorf("failed to create kube client: %w", err)
	}
	namespace := naming.Namespace(env.Name)
	if err := kcli.RestartDeployment(ctx, namespace, svc.Name); err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)
	logger.Info(ctx, "rollout restarted", "service", svc.Name, "namespace", namespace)
	return &RolloutOutput{Deployment: svc.Name, Namespace: namespace}, nil
}
