package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/searchops/searchops/usecase/service"
	"github.com/spf13/cobra"
)

// newCmdRollout restarts a service's deployment.
func newCmdRollout() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rollout <service>",
		Short:         "Trigger a rolling restart of a service",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			quietKlog()
			u, err := buildServiceUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			id, err := resolveServiceID(ctx, u.Repos.Service, args[0])
			if err != nil {
				return err
			}
			out, err := u.Rollout(ctx, &service.RolloutInput{ServiceID: id})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	return cmd
}
