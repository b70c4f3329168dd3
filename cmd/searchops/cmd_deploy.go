package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/searchops/searchops/usecase/environment"
	"github.com/searchops/searchops/usecase/service"
	"github.com/spf13/cobra"
)

// deployTimeout bounds a full environment convergence including EKS
// cluster creation, which alone can take 20 minutes.
const deployTimeout = 60 * time.Minute

// newCmdDeploy converges an environment end to end: cluster, in-cluster
// infrastructure and the resource stack.
func newCmdDeploy() *cobra.Command {
	var envSelector string
	var skipProvision bool
	cmd := &cobra.Command{
		Use:           "deploy",
		Short:         "Provision and converge an environment",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildEnvironmentUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), deployTimeout)
			defer cancel()
			envID, err := resolveEnvironmentID(ctx, u.Repos.Environment, envSelector)
			if err != nil {
				return err
			}
			out, err := u.Deploy(ctx, &environment.DeployInput{EnvironmentID: envID, SkipProvision: skipProvision})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&envSelector, "env", "", "Environment name or ID (default: the sole environment)")
	cmd.Flags().BoolVar(&skipProvision, "skip-provision", false, "Skip cluster provisioning, only converge the resource stack")
	return cmd
}

// newCmdDestroy tears down an environment's resource stack.
func newCmdDestroy() *cobra.Command {
	var envSelector string
	var deprovision bool
	cmd := &cobra.Command{
		Use:           "destroy",
		Short:         "Tear down an environment's resources",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildEnvironmentUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), deployTimeout)
			defer cancel()
			envID, err := resolveEnvironmentID(ctx, u.Repos.Environment, envSelector)
			if err != nil {
				return err
			}
			return u.Destroy(ctx, &environment.DestroyInput{EnvironmentID: envID, DeprovisionCluster: deprovision})
		},
	}
	cmd.Flags().StringVar(&envSelector, "env", "", "Environment name or ID (default: the sole environment)")
	cmd.Flags().BoolVar(&deprovision, "deprovision-cluster", false, "Also deprovision the cluster itself")
	return cmd
}

// newCmdPreview shows the changes a deploy would make.
func newCmdPreview() *cobra.Command {
	var envSelector string
	cmd := &cobra.Command{
		Use:           "preview",
		Short:         "Preview the changes a deploy would make",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildEnvironmentUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()
			envID, err := resolveEnvironmentID(ctx, u.Repos.Environment, envSelector)
			if err != nil {
				return err
			}
			out, err := u.Preview(ctx, &environment.PreviewInput{EnvironmentID: envID})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&envSelector, "env", "", "Environment name or ID (default: the sole environment)")
	return cmd
}

// newCmdStatus reports consolidated environment health, or one
// service's deployment state with --service.
func newCmdStatus() *cobra.Command {
	var envSelector string
	var svcSelector string
	cmd := &cobra.Command{
		Use:           "status",
		Short:         "Report environment health",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			quietKlog()
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if svcSelector != "" {
				u, err := buildServiceUseCase(cmd)
				if err != nil {
					return err
				}
				id, err := resolveServiceID(ctx, u.Repos.Service, svcSelector)
				if err != nil {
					return err
				}
				out, err := u.Status(ctx, &service.StatusInput{ServiceID: id})
				if err != nil {
					return err
				}
				return enc.Encode(out)
			}
			u, err := buildEnvironmentUseCase(cmd)
			if err != nil {
				return err
			}
			envID, err := resolveEnvironmentID(ctx, u.Repos.Environment, envSelector)
			if err != nil {
				return err
			}
			out, err := u.Status(ctx, &environment.StatusInput{EnvironmentID: envID})
			if err != nil {
				return err
			}
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&envSelector, "env", "", "Environment name or ID (default: the sole environment)")
	cmd.Flags().StringVar(&svcSelector, "service", "", "Service name or ID (report one service instead)")
	return cmd
}
