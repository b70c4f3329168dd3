// Package kindlocal implements the local provider driver. Environments
// run on a kind cluster with in-cluster stand-ins for the cloud
// services: Kafka for MSK, MinIO for S3, ingress-nginx for the ALB and
// an OpenTelemetry collector.
package kindlocal

import (
	"context"
	"fmt"
	"time"

	"sigs.k8s.io/kind/pkg/cluster"
	kindcmd "sigs.k8s.io/kind/pkg/cmd"

	providerdrv "github.com/searchops/searchops/adapters/drivers/provider"
	"github.com/searchops/searchops/adapters/kube"
	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/logging"
	"github.com/searchops/searchops/internal/naming"
)

// driver implements the kind provider driver.
type driver struct {
	envName  string
	provider *cluster.Provider
	// waitReady bounds the control plane readiness wait on create.
	waitReady time.Duration
}

// ID returns the provider identifier.
func (d *driver) ID() string { return "kind" }

func (d *driver) clusterName(c *model.Cluster) string {
	if c != nil && c.Name != "" {
		return c.Name
	}
	return naming.StackName(d.envName)
}

func (d *driver) clusterExists(name string) (bool, error) {
	names, err := d.provider.List()
	if err != nil {
		return false, fmt.Errorf("list kind clusters: %w", err)
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ClusterProvision creates the kind cluster and waits for the control
// plane. Idempotent when the cluster already exists.
func (d *driver) ClusterProvision(ctx context.Context, env *model.Environment, c *model.Cluster) error {
	logger := logging.FromContext(ctx)
	name := d.clusterName(c)

	exists, err := d.clusterExists(name)
	if err != nil {
		return err
	}
	if exists {
		logger.Info(ctx, "kind cluster already exists", "cluster", name)
		return nil
	}
	if c != nil && c.Existing {
		return fmt.Errorf("cluster %s is marked existing but no kind cluster with that name was found", name)
	}

	logger.Info(ctx, "creating kind cluster", "cluster", name)
	if err := d.provider.Create(
		name,
		cluster.CreateWithWaitForReady(d.waitReady),
	); err != nil {
		return fmt.Errorf("failed to create cluster: %w", err)
	}
	return nil
}

// ClusterDeprovision deletes the kind cluster.
func (d *driver) ClusterDeprovision(ctx context.Context, env *model.Environment, c *model.Cluster) error {
	name := d.clusterName(c)
	if c != nil && c.Existing {
		return fmt.Errorf("cluster %s is marked existing and is not managed here", name)
	}
	logging.FromContext(ctx).Info(ctx, "deleting kind cluster", "cluster", name)
	if err := d.provider.Delete(name, ""); err != nil {
		return fmt.Errorf("failed to delete cluster: %w", err)
	}
	return nil
}

// ClusterStatus reports whether the kind cluster exists and the
// in-cluster components are installed.
func (d *driver) ClusterStatus(ctx context.Context, env *model.Environment, c *model.Cluster) (*model.ClusterStatus, error) {
	st := &model.ClusterStatus{}
	if c != nil {
		st.Existing = c.Existing
	}
	name := d.clusterName(c)

	exists, err := d.clusterExists(name)
	if err != nil {
		return nil, err
	}
	st.Provisioned = exists
	if !exists {
		return st, nil
	}

	client, _, err := d.kubeClient(ctx, c)
	if err != nil {
		return nil, err
	}
	dep, err := client.CheckDeployment(ctx, ingressNamespace, "ingress-nginx-controller", nil, 0)
	if err != nil {
		return nil, err
	}
	st.Installed = dep.Exists
	return st, nil
}

// ClusterKubeconfig exports the kind cluster's kubeconfig.
func (d *driver) ClusterKubeconfig(ctx context.Context, env *model.Environment, c *model.Cluster) ([]byte, error) {
	name := d.clusterName(c)
	kc, err := d.provider.KubeConfig(name, false)
	if err != nil {
		return nil, fmt.Errorf("kubeconfig for cluster %s: %w", name, err)
	}
	return []byte(kc), nil
}

// kubeClient builds a client and installer against the kind cluster.
func (d *driver) kubeClient(ctx context.Context, c *model.Cluster) (*kube.Client, *kube.Installer, error) {
	kc, err := d.ClusterKubeconfig(ctx, nil, c)
	if err != nil {
		return nil, nil, err
	}
	client, err := kube.NewClientFromKubeconfig(ctx, kc, nil)
	if err != nil {
		return nil, nil, err
	}
	return client, kube.NewInstaller(client, kc), nil
}

// init registers the kind driver.
func init() {
	providerdrv.Register("kind", func(env *model.Environment) (providerdrv.Driver, error) {
		if env == nil {
			return nil, fmt.Errorf("kind driver requires an environment")
		}
		wait := 5 * time.Minute
		if v := env.Settings["kind_wait"]; v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return nil, fmt.Errorf("invalid kind_wait %q: %w", v, err)
			}
			wait = parsed
		}
		return &driver{
			envName: env.Name,
			provider: cluster.NewProvider(
				cluster.ProviderWithLogger(kindcmd.NewLogger()),
			),
			waitReady: wait,
		}, nil
	})
}
