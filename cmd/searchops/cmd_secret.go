package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/searchops/searchops/usecase/secret"
	"github.com/spf13/cobra"
)

// newCmdSecret returns the parent command for secret operations.
func newCmdSecret() *cobra.Command {
	c := &cobra.Command{
		Use:   "secret",
		Short: "Secret sync commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdSecretPull())
	c.AddCommand(newCmdSecretEnv())
	return c
}

// newCmdSecretPull syncs source secrets into Kubernetes Secrets directly.
func newCmdSecretPull() *cobra.Command {
	var envSelector string
	var entry string
	var del bool
	var dryRun bool
	cmd := &cobra.Command{
		Use:           "pull",
		Short:         "Apply source secrets as Kubernetes Secrets, bypassing the sync operator",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			quietKlog()
			u, err := buildSecretUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			envID, err := resolveEnvironmentID(ctx, u.Repos.Environment, envSelector)
			if err != nil {
				return err
			}
			op := secret.PullOpSet
			if del {
				op = secret.PullOpDelete
			}
			out, err := u.Pull(ctx, &secret.PullInput{EnvironmentID: envID, Entry: entry, Operation: op, DryRun: dryRun})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&envSelector, "env", "", "Environment name or ID (default: the sole environment)")
	cmd.Flags().StringVar(&entry, "entry", "", "Sync entry name (default: all entries)")
	cmd.Flags().BoolVar(&del, "delete", false, "Delete the target Secrets instead of applying")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the result without applying changes")
	return cmd
}

// newCmdSecretEnv renders a source secret as dotenv lines.
func newCmdSecretEnv() *cobra.Command {
	var envSelector string
	var entry string
	cmd := &cobra.Command{
		Use:           "env",
		Short:         "Render a source secret as dotenv lines",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildSecretUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			envID, err := resolveEnvironmentID(ctx, u.Repos.Environment, envSelector)
			if err != nil {
				return err
			}
			out, err := u.Env(ctx, &secret.EnvInput{EnvironmentID: envID, Entry: entry})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out.Content)
			return nil
		},
	}
	cmd.Flags().StringVar(&envSelector, "env", "", "Environment name or ID (default: the sole environment)")
	cmd.Flags().StringVar(&entry, "entry", "", "Sync entry name")
	_ = cmd.MarkFlagRequired("entry")
	return cmd
}
