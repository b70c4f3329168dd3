package kindlocal

import (
	"context"
	"fmt"
	"strings"

	"github.com/searchops/searchops/adapters/kube"
	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/logging"
	"github.com/searchops/searchops/internal/naming"
)

// secretSettingPrefix scopes environment settings that seed local
// secrets, e.g. "secret.app-credentials.API_KEY" = "dev-key".
const secretSettingPrefix = "secret."

// StackPreview reports what a StackUp would apply without touching the
// cluster. The local driver has no state engine, so everything the
// environment declares counts as one apply each.
func (d *driver) StackPreview(ctx context.Context, env *model.Environment, c *model.Cluster, services []*model.Service) (*model.StackSummary, error) {
	changes := map[string]int{"namespace": 1}
	if env.Secrets != nil {
		changes["secret"] = len(env.Secrets.Entries)
	}
	changes["workload"] = len(services)
	return &model.StackSummary{
		ResourceChanges: changes,
		Outputs:         d.outputs(env),
	}, nil
}

// StackUp applies the environment namespace, the locally seeded secrets
// and the service workloads to the kind cluster.
func (d *driver) StackUp(ctx context.Context, env *model.Environment, c *model.Cluster, services []*model.Service) (*model.StackSummary, error) {
	logger := logging.FromContext(ctx)
	client, _, err := d.kubeClient(ctx, c)
	if err != nil {
		return nil, err
	}

	ns := naming.Namespace(env.Name)
	if err := client.EnsureNamespace(ctx, ns); err != nil {
		return nil, err
	}
	changes := map[string]int{"namespace": 1}

	// Secret sync targets are seeded from environment settings locally;
	// there is no cloud secret store to pull from.
	if env.Secrets != nil {
		for _, e := range env.Secrets.Entries {
			target := e.Namespace
			if target == "" {
				target = ns
			}
			if target != ns {
				if err := client.EnsureNamespace(ctx, target); err != nil {
					return nil, err
				}
			}
			data := localSecretData(env, e.Name)
			op, _, err := client.ApplySecret(ctx, target, e.TargetSecret, "settings:"+e.Name, data)
			if err != nil {
				return nil, fmt.Errorf("apply secret %s: %w", e.TargetSecret, err)
			}
			changes["secret:"+op]++
		}
	}

	envSecret := ""
	if env.Secrets != nil && len(env.Secrets.Entries) > 0 {
		envSecret = env.Secrets.Entries[0].TargetSecret
	}

	for _, svc := range services {
		logger.Info(ctx, "applying workload", "service", svc.Name, "namespace", ns)
		spec := kube.WorkloadSpec{
			Namespace:        ns,
			Service:          svc,
			EnvFromSecret:    envSecret,
			IngressClassName: "nginx",
			OTLPEndpoint:     otelEndpoint,
			Labels: map[string]string{
				"searchops/environment": env.Name,
			},
		}
		if err := client.ApplyWorkload(ctx, spec); err != nil {
			return nil, fmt.Errorf("apply workload %s: %w", svc.Name, err)
		}
		changes["workload"]++
	}

	return &model.StackSummary{
		ResourceChanges: changes,
		Outputs:         d.outputs(env),
	}, nil
}

// StackDestroy removes the environment namespace and everything in it.
// The in-cluster infrastructure installed by ClusterInstall stays.
func (d *driver) StackDestroy(ctx context.Context, env *model.Environment, c *model.Cluster) error {
	client, _, err := d.kubeClient(ctx, c)
	if err != nil {
		return err
	}
	return client.DeleteNamespace(ctx, naming.Namespace(env.Name))
}

// StackOutputs returns the static endpoints of the local stand-ins.
func (d *driver) StackOutputs(ctx context.Context, env *model.Environment) (map[string]string, error) {
	return d.outputs(env), nil
}

func (d *driver) outputs(env *model.Environment) map[string]string {
	outs := map[string]string{
		"namespace": naming.Namespace(env.Name),
	}
	if env.Messaging != nil && env.Messaging.Kind != "sqs" {
		outs["bootstrapBrokers"] = kafkaBootstrapSvc
	}
	if env.Storage != nil {
		outs["storageEndpoint"] = minioEndpoint
		for _, b := range env.Storage.Buckets {
			outs["bucket:"+b.Name] = b.Name
		}
	}
	if env.Telemetry != nil {
		outs["otlpEndpoint"] = otelEndpoint
	}
	outs["ingress"] = "http://localhost"
	return outs
}

// localSecretData collects "secret.<entry>.<KEY>" settings into the data
// map for one secret entry.
func localSecretData(env *model.Environment, entry string) map[string][]byte {
	data := map[string][]byte{}
	prefix := secretSettingPrefix + entry + "."
	for k, v := range env.Settings {
		if strings.HasPrefix(k, prefix) {
			data[strings.TrimPrefix(k, prefix)] = []byte(v)
		}
	}
	return data
}
