package main

import (
	"encoding/json"
	"fmt"

	"github.com/searchops/searchops/config/searchopscfg"
	"github.com/spf13/cobra"
)

// newCmdConfig returns the parent command for configuration operations.
func newCmdConfig() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Read and validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdConfigShow())
	c.AddCommand(newCmdConfigValidate())
	return c
}

func newCmdConfigShow() *cobra.Command {
	var file string
	c := &cobra.Command{
		Use:           "show",
		Short:         "Show the parsed configuration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := searchopscfg.Load(file)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
	c.Flags().StringVarP(&file, "file", "f", searchopscfg.DefaultConfigPath, "Path to searchops.yml")
	return c
}

func newCmdConfigValidate() *cobra.Command {
	var file string
	c := &cobra.Command{
		Use:           "validate",
		Short:         "Validate the configuration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := searchopscfg.Load(file)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (environment=%s driver=%s services=%d)\n",
				file, cfg.Environment.Name, cfg.Environment.Driver, len(cfg.Services))
			return nil
		},
	}
	c.Flags().StringVarP(&file, "file", "f", searchopscfg.DefaultConfigPath, "Path to searchops.yml")
	return c
}
