package providerdrv

import (
	"context"

	"github.com/searchops/searchops/domain/model"
)

// Driver abstracts provider-specific behavior. Implementations live under
// adapters/drivers/provider/<name> and should return a provider identifier
// such as "eks" via ID().
type Driver interface {
	// ID returns the provider identifier (e.g., "eks", "kind").
	ID() string

	// ClusterProvision provisions a Kubernetes cluster according to the cluster specification.
	ClusterProvision(ctx context.Context, env *model.Environment, cluster *model.Cluster) error

	// ClusterDeprovision deprovisions a Kubernetes cluster.
	ClusterDeprovision(ctx context.Context, env *model.Environment, cluster *model.Cluster) error

	// ClusterStatus returns the status of a Kubernetes cluster.
	ClusterStatus(ctx context.Context, env *model.Environment, cluster *model.Cluster) (*model.ClusterStatus, error)

	// ClusterInstall installs in-cluster infrastructure (ingress controller,
	// telemetry collector, secret sync) into a provisioned cluster.
	ClusterInstall(ctx context.Context, env *model.Environment, cluster *model.Cluster) error

	// ClusterUninstall removes installed in-cluster infrastructure.
	ClusterUninstall(ctx context.Context, env *model.Environment, cluster *model.Cluster) error

	// ClusterKubeconfig returns admin kubeconfig bytes for the cluster.
	ClusterKubeconfig(ctx context.Context, env *model.Environment, cluster *model.Cluster) ([]byte, error)

	// StackPreview shows the resource changes a StackUp would make.
	StackPreview(ctx context.Context, env *model.Environment, cluster *model.Cluster, services []*model.Service) (*model.StackSummary, error)

	// StackUp converges all environment resources (messaging, storage,
	// secrets, workloads) to the desired state.
	StackUp(ctx context.Context, env *model.Environment, cluster *model.Cluster, services []*model.Service) (*model.StackSummary, error)

	// StackDestroy tears down all environment resources. The cluster is
	// the one the environment was deployed to; drivers use it to target
	// the same cluster StackUp did.
	StackDestroy(ctx context.Context, env *model.Environment, cluster *model.Cluster) error

	// StackOutputs returns the exported outputs of the current stack state.
	StackOutputs(ctx context.Context, env *model.Environment) (map[string]string, error)
}

// driverFactory is a constructor function for a provider driver.
type driverFactory func(env *model.Environment) (Driver, error)

// registry holds registered drivers by name.
var registry = map[string]driverFactory{}

// Register makes a driver available by the given name. Drivers should call
// this from their init() function.
func Register(name string, factory driverFactory) {
	registry[name] = factory
}

// GetDriverFactory returns the driver factory function for the given name.
func GetDriverFactory(name string) (driverFactory, bool) {
	factory, exists := registry[name]
	return factory, exists
}
