package environment

import (
	"context"
	"fmt"

	"github.com/searchops/searchops/adapters/kube"
	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/logging"
	"github.com/searchops/searchops/internal/naming"
)

// StatusInput represents a command to report environment health.
type StatusInput struct {
	// EnvironmentID identifies the environment.
	EnvironmentID string `json:"environment_id"`
}

// ServiceStatus is the per-service slice of the report.
type ServiceStatus struct {
	Name   string                 `json:"name"`
	Deploy *kube.DeploymentStatus `json:"deploy"`
}

// ResourceStatus reports one verified cloud resource.
type ResourceStatus struct {
	Kind   string `json:"kind"` // "bucket" or "queue"
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
}

// StatusOutput is the consolidated environment report.
type StatusOutput struct {
	EnvironmentName string               `json:"environment_name"`
	Cluster         *model.ClusterStatus `json:"cluster"`
	Services        []ServiceStatus      `json:"services"`
	SecretsSynced   map[string]bool      `json:"secrets_synced,omitempty"`
	Resources       []ResourceStatus     `json:"resources,omitempty"`
	Outputs         map[string]string    `json:"outputs,omitempty"`
	Healthy         bool                 `json:"healthy"`
}

// Status verifies the deployed environment: cluster state, workload
// availability, synced secrets and (for cloud drivers) that buckets and
// queues actually exist.
func (u *UseCase) Status(ctx context.Context, in *StatusInput) (*StatusOutput, error) {
	if in == nil || in.EnvironmentID == "" {
		return nil, model.ErrEnvironmentInvalid
	}
	logger := logging.FromContext(ctx)

	env, err := u.Repos.Environment.Get(ctx, in.EnvironmentID)
	if err != nil {
		return nil, err
	}
	cluster, err := u.clusterFor(ctx, env)
	if err != nil {
		return nil, err
	}
	services, err := u.servicesFor(ctx, cluster)
	if err != nil {
		return nil, err
	}

	out := &StatusOutput{EnvironmentName: env.Name, Healthy: true}

	cs, err := u.ClusterPort.Status(ctx, cluster)
	if err != nil {
		return nil, fmt.Errorf("cluster status: %w", err)
	}
	out.Cluster = cs
	if !cs.Provisioned {
		out.Healthy = false
		return out, nil
	}

	outputs, err := u.StackPort.Outputs(ctx, env)
	if err != nil {
		return nil, fmt.Errorf("stack outputs: %w", err)
	}
	out.Outputs = outputs

	kubeconfig, err := u.ClusterPort.Kubeconfig(ctx, cluster)
	if err != nil {
		return nil, fmt.Errorf("cluster kubeconfig: %w", err)
	}
	kcli, err := kube.NewClientFromKubeconfig(ctx, kubeconfig, &kube.Options{UserAgent: "searchops"})
	if err != nil {
		return nil, fmt.Errorf("create kube client: %w", err)
	}

	ns := naming.Namespace(env.Name)
	for _, svc := range services {
		ds, err := kcli.CheckDeployment(ctx, ns, svc.Name, map[string]string{"app": svc.Name}, svc.Port)
		if err != nil {
			return nil, fmt.Errorf("check deployment %s: %w", svc.Name, err)
		}
		if !ds.Exists || !ds.Available || !ds.LabelsMatch || !ds.PortMatch {
			out.Healthy = false
		}
		out.Services = append(out.Services, ServiceStatus{Name: svc.Name, Deploy: ds})
	}

	if env.Secrets != nil && len(env.Secrets.Entries) > 0 {
		out.SecretsSynced = map[string]bool{}
		for _, e := range env.Secrets.Entries {
			target := e.Namespace
			if target == "" {
				target = ns
			}
			synced, err := kcli.SecretSynced(ctx, target, e.TargetSecret)
			if err != nil {
				return nil, fmt.Errorf("check secret %s: %w", e.TargetSecret, err)
			}
			out.SecretsSynced[e.TargetSecret] = synced
			if !synced {
				out.Healthy = false
			}
		}
	}

	if u.NewVerifier != nil && env.Region != "" {
		verifier, err := u.NewVerifier(ctx, env.Region)
		if err != nil {
			return nil, fmt.Errorf("create verifier: %w", err)
		}
		if env.Storage != nil {
			for _, b := range env.Storage.Buckets {
				name := naming.BucketName(env.Name, b.Name)
				exists, err := verifier.BucketExists(ctx, name)
				if err != nil {
					return nil, fmt.Errorf("verify bucket %s: %w", name, err)
				}
				out.Resources = append(out.Resources, ResourceStatus{Kind: "bucket", Name: name, Exists: exists})
				if !exists {
					out.Healthy = false
				}
			}
		}
		if env.Messaging != nil && env.Messaging.Kind == "sqs" {
			for _, q := range env.Messaging.Queues {
				name := naming.QueueName(env.Name, q.Name)
				exists, err := verifier.QueueExists(ctx, name)
				if err != nil {
					return nil, fmt.Errorf("verify queue %s: %w", name, err)
				}
				out.Resources = append(out.Resources, ResourceStatus{Kind: "queue", Name: name, Exists: exists})
				if !exists {
					out.Healthy = false
				}
			}
		}
	}

	logger.Info(ctx, "environment status", "environment", env.Name, "healthy", out.Healthy)
	return out, nil
}
