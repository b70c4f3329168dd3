package service

import (
	"context"
	"fmt"

	"github.com/searchops/searchops/adapters/kube"
	"github.com/searchops/searchops/internal/naming"
)

// StatusInput identifies the service to check.
type StatusInput struct {
	// ServiceID is the identifier of the service.
	ServiceID string `json:"service_id"`
}

// StatusOutput reports the in-cluster state of one service.
type StatusOutput struct {
	// ServiceName is the service name.
	ServiceName string `json:"service_name"`
	// Deployment is the observed deployment state.
	Deployment *kube.DeploymentStatus `json:"deployment"`
	// IngressHostname is the published hostname, empty when not exposed.
	IngressHostname string `json:"ingress_hostname,omitempty"`
}

// Status checks the service's deployment against its declared shape.
func (u *UseCase) Status(ctx context.Context, in *StatusInput) (*StatusOutput, error) {
	if in == nil || in.ServiceID == "" {
		return nil, fmt.Errorf("StatusInput.ServiceID is required")
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
	labels := map[string]string{"app": svc.Name}
	st, err := kcli.CheckDeployment(ctx, namespace, svc.Name, labels, svc.Port)
	if err != nil {
		return nil, err
	}
	out := &StatusOutput{ServiceName: svc.Name, Deployment: st}
	if svc.Ingress != nil && svc.Ingress.Host != "" {
		host, err := kcli.IngressHostname(ctx, namespace, svc.Name)
		if err == nil {
			out.IngressHostname = host
		}
	}
	return out, nil
}
