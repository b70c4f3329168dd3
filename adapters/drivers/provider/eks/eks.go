// Package eks implements the AWS provider driver. It converges each
// environment through a single Pulumi stack run with the Automation API:
// VPC, EKS cluster, IRSA roles, messaging (MSK or SQS), S3 buckets,
// Secrets Manager secrets, in-cluster Helm releases and the application
// workloads behind an ALB ingress.
package eks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	providerdrv "github.com/searchops/searchops/adapters/drivers/provider"
	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/naming"
)

// deployScope selects how much of the stack program is materialized.
// Pulumi removes resources that fall out of the program, so moving an
// environment to a narrower scope uninstalls the layers above it.
type deployScope int

const (
	// scopeCluster provisions networking and the EKS cluster only.
	scopeCluster deployScope = iota
	// scopeInfra adds cloud resources and in-cluster infrastructure.
	scopeInfra
	// scopeAll adds the application workloads and ingress.
	scopeAll
)

// driver implements the EKS provider driver.
type driver struct {
	envName    string
	region     string
	backendURL string
	passphrase string
}

// ID returns the provider identifier.
func (d *driver) ID() string { return "eks" }

// ClusterProvision converges the stack at cluster scope; an environment
// already deployed at a wider scope is left as-is.
func (d *driver) ClusterProvision(ctx context.Context, env *model.Environment, cluster *model.Cluster) error {
	if cluster.Existing {
		return nil
	}
	cur, err := d.currentScope(ctx, env)
	if err != nil {
		return err
	}
	if cur >= scopeCluster {
		// Never narrow an installed environment from a provision call.
		return nil
	}
	_, err = d.up(ctx, env, cluster, nil, scopeCluster)
	return err
}

// ClusterDeprovision destroys the whole stack. All layers above the
// cluster depend on it, so a partial teardown is not meaningful here.
// An existing cluster is only referenced by the stack, never created,
// so the destroy leaves it running either way.
func (d *driver) ClusterDeprovision(ctx context.Context, env *model.Environment, cluster *model.Cluster) error {
	return d.StackDestroy(ctx, env, cluster)
}

// ClusterStatus reports provision/install state from stack outputs.
func (d *driver) ClusterStatus(ctx context.Context, env *model.Environment, cluster *model.Cluster) (*model.ClusterStatus, error) {
	st := &model.ClusterStatus{Existing: cluster.Existing}
	outs, err := d.StackOutputs(ctx, env)
	if err != nil {
		return nil, err
	}
	st.Provisioned = outs[outClusterName] != ""
	st.Installed = outs[outInstalledComponents] != ""
	return st, nil
}

// ClusterInstall converges the stack at infra scope, bringing up the
// in-cluster components (ALB controller, external-secrets, collector)
// and the cloud resources they bind to.
func (d *driver) ClusterInstall(ctx context.Context, env *model.Environment, cluster *model.Cluster) error {
	cur, err := d.currentScope(ctx, env)
	if err != nil {
		return err
	}
	if cur >= scopeInfra {
		return nil
	}
	_, err = d.up(ctx, env, cluster, nil, scopeInfra)
	return err
}

// ClusterUninstall narrows the stack back to cluster scope, removing the
// in-cluster components and the cloud resources above the cluster.
func (d *driver) ClusterUninstall(ctx context.Context, env *model.Environment, cluster *model.Cluster) error {
	_, err := d.up(ctx, env, cluster, nil, scopeCluster)
	return err
}

// ClusterKubeconfig returns the kubeconfig exported by the stack.
func (d *driver) ClusterKubeconfig(ctx context.Context, env *model.Environment, cluster *model.Cluster) ([]byte, error) {
	outs, err := d.StackOutputs(ctx, env)
	if err != nil {
		return nil, err
	}
	kc := outs[outKubeconfig]
	if kc == "" {
		return nil, fmt.Errorf("stack %s has no kubeconfig output; provision the cluster first", naming.StackName(env.Name))
	}
	return []byte(kc), nil
}

// StackPreview previews a full-scope convergence.
func (d *driver) StackPreview(ctx context.Context, env *model.Environment, cluster *model.Cluster, services []*model.Service) (*model.StackSummary, error) {
	return d.preview(ctx, env, cluster, services, scopeAll)
}

// StackUp converges the stack at full scope.
func (d *driver) StackUp(ctx context.Context, env *model.Environment, cluster *model.Cluster, services []*model.Service) (*model.StackSummary, error) {
	return d.up(ctx, env, cluster, services, scopeAll)
}

// init registers the EKS driver.
func init() {
	providerdrv.Register("eks", func(env *model.Environment) (providerdrv.Driver, error) {
		if env == nil {
			return nil, fmt.Errorf("eks driver requires an environment")
		}
		if env.Region == "" {
			return nil, fmt.Errorf("eks driver requires a region for environment %s", env.Name)
		}
		d := &driver{
			envName:    env.Name,
			region:     env.Region,
			backendURL: env.Settings["pulumi_backend"],
			passphrase: env.Settings["pulumi_passphrase"],
		}
		if d.backendURL == "" {
			if v := os.Getenv("PULUMI_BACKEND_URL"); v != "" {
				d.backendURL = v
			} else {
				home, err := os.UserHomeDir()
				if err != nil {
					return nil, fmt.Errorf("resolve home dir for pulumi backend: %w", err)
				}
				dir := filepath.Join(home, ".searchops", "pulumi")
				if err := os.MkdirAll(dir, 0o700); err != nil {
					return nil, fmt.Errorf("create pulumi backend dir: %w", err)
				}
				d.backendURL = "file://" + dir
			}
		}
		if d.passphrase == "" {
			d.passphrase = os.Getenv("PULUMI_CONFIG_PASSPHRASE")
		}
		return d, nil
	})
}
