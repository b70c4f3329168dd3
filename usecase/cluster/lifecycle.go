package cluster

import (
	"context"
	"fmt"

	"github.com/searchops/searchops/domain/model"
	"github.com/searchops/searchops/internal/logging"
)

// ProvisionInput represents a command to provision a cluster.
type ProvisionInput struct {
	ID string `json:"id"`
}

// DeprovisionInput represents a command to deprovision a cluster.
type DeprovisionInput struct {
	ID string `json:"id"`
}

// InstallInput represents a command to install in-cluster resources.
type InstallInput struct {
	ID string `json:"id"`
}

// UninstallInput represents a command to uninstall in-cluster resources.
type UninstallInput struct {
	ID string `json:"id"`
}

// Provision creates the Kubernetes cluster through the environment driver.
func (u *UseCase) Provision(ctx context.Context, cmd ProvisionInput) error {
	return u.lifecycle(ctx, cmd.ID, "provision", u.ClusterPort.Provision)
}

// Deprovision removes the Kubernetes cluster. In-cluster state is lost.
func (u *UseCase) Deprovision(ctx context.Context, cmd DeprovisionInput) error {
	return u.lifecycle(ctx, cmd.ID, "deprovision", u.ClusterPort.Deprovision)
}

// Install installs the in-cluster infrastructure (ingress controller,
// secret sync operator, telemetry collector) on a provisioned cluster.
func (u *UseCase) Install(ctx context.Context, cmd InstallInput) error {
	return u.lifecycle(ctx, cmd.ID, "install", u.ClusterPort.Install)
}

// Uninstall removes the installed in-cluster infrastructure.
func (u *UseCase) Uninstall(ctx context.Context, cmd UninstallInput) error {
	return u.lifecycle(ctx, cmd.ID, "uninstall", u.ClusterPort.Uninstall)
}

func (u *UseCase) lifecycle(ctx context.Context, id, op string, fn func(context.Context, *model.Cluster) error) error {
	if id == "" {
		return model.ErrClusterInvalid
	}
	c, err := u.Repos.Cluster.Get(ctx, id)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Info(ctx, "cluster "+op, "cluster", c.Name)
	if err := fn(ctx, c); err != nil {
		return fmt.Errorf("%s cluster %s: %w", op, c.Name, err)
	}
	return nil
}
