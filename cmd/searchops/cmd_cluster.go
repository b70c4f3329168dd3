package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	uc "github.com/searchops/searchops/usecase/cluster"
	"github.com/spf13/cobra"
)

// newCmdCluster returns the parent command for cluster-related operations.
func newCmdCluster() *cobra.Command {
	c := &cobra.Command{
		Use:   "cluster",
		Short: "Cluster related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help if no subcommand provided
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdClusterProvision())
	c.AddCommand(newCmdClusterDeprovision())
	c.AddCommand(newCmdClusterInstall())
	c.AddCommand(newCmdClusterUninstall())
	c.AddCommand(newCmdClusterStatus())
	c.AddCommand(newCmdClusterKubeconfig())
	return c
}

// clusterAction runs one lifecycle operation against the selected cluster.
func clusterAction(cmd *cobra.Command, selector string, timeout time.Duration, fn func(ctx context.Context, u *uc.UseCase, id string) error) error {
	u, err := buildClusterUseCase(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	id, err := resolveClusterID(ctx, u.Repos.Cluster, selector)
	if err != nil {
		return err
	}
	return fn(ctx, u, id)
}

func newCmdClusterProvision() *cobra.Command {
	var selector string
	cmd := &cobra.Command{
		Use:           "provision",
		Short:         "Provision the Kubernetes cluster",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return clusterAction(cmd, selector, deployTimeout, func(ctx context.Context, u *uc.UseCase, id string) error {
				return u.Provision(ctx, uc.ProvisionInput{ID: id})
			})
		},
	}
	cmd.Flags().StringVar(&selector, "cluster", "", "Cluster name or ID (default: the sole cluster)")
	return cmd
}

func newCmdClusterDeprovision() *cobra.Command {
	var selector string
	cmd := &cobra.Command{
		Use:           "deprovision",
		Short:         "Deprovision the Kubernetes cluster",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return clusterAction(cmd, selector, deployTimeout, func(ctx context.Context, u *uc.UseCase, id string) error {
				return u.Deprovision(ctx, uc.DeprovisionInput{ID: id})
			})
		},
	}
	cmd.Flags().StringVar(&selector, "cluster", "", "Cluster name or ID (default: the sole cluster)")
	return cmd
}

func newCmdClusterInstall() *cobra.Command {
	var selector string
	cmd := &cobra.Command{
		Use:           "install",
		Short:         "Install in-cluster infrastructure components",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return clusterAction(cmd, selector, deployTimeout, func(ctx context.Context, u *uc.UseCase, id string) error {
				return u.Install(ctx, uc.InstallInput{ID: id})
			})
		},
	}
	cmd.Flags().StringVar(&selector, "cluster", "", "Cluster name or ID (default: the sole cluster)")
	return cmd
}

func newCmdClusterUninstall() *cobra.Command {
	var selector string
	cmd := &cobra.Command{
		Use:           "uninstall",
		Short:         "Uninstall in-cluster infrastructure components",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return clusterAction(cmd, selector, deployTimeout, func(ctx context.Context, u *uc.UseCase, id string) error {
				return u.Uninstall(ctx, uc.UninstallInput{ID: id})
			})
		},
	}
	cmd.Flags().StringVar(&selector, "cluster", "", "Cluster name or ID (default: the sole cluster)")
	return cmd
}

func newCmdClusterStatus() *cobra.Command {
	var selector string
	cmd := &cobra.Command{
		Use:           "status",
		Short:         "Show cluster provisioning status",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return clusterAction(cmd, selector, 5*time.Minute, func(ctx context.Context, u *uc.UseCase, id string) error {
				out, err := u.Status(ctx, &uc.StatusInput{ClusterID: id})
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			})
		},
	}
	cmd.Flags().StringVar(&selector, "cluster", "", "Cluster name or ID (default: the sole cluster)")
	return cmd
}

func newCmdClusterKubeconfig() *cobra.Command {
	var selector string
	var outputPath string
	cmd := &cobra.Command{
		Use:           "kubeconfig",
		Short:         "Export the cluster admin kubeconfig",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return clusterAction(cmd, selector, 5*time.Minute, func(ctx context.Context, u *uc.UseCase, id string) error {
				out, err := u.Kubeconfig(ctx, &uc.KubeconfigInput{ClusterID: id})
				if err != nil {
					return err
				}
				if outputPath == "" || outputPath == "-" {
					_, err = cmd.OutOrStdout().Write(out.Kubeconfig)
					return err
				}
				// kubeconfig carries cluster credentials
				if err := os.WriteFile(outputPath, out.Kubeconfig, 0o600); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "kubeconfig written to %s\n", outputPath)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&selector, "cluster", "", "Cluster name or ID (default: the sole cluster)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write kubeconfig to file instead of stdout")
	return cmd
}
