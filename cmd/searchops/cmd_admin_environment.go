package main

import (
	"context"
	"encoding/json"
	"time"

	uc "github.com/searchops/searchops/usecase/environment"
	"github.com/spf13/cobra"
)

type environmentSpec struct {
	Name   string `yaml:"name" json:"name"`
	Driver string `yaml:"driver,omitempty" json:"driver,omitempty"`
	Region string `yaml:"region,omitempty" json:"region,omitempty"`
}

func newCmdAdminEnvironment() *cobra.Command {
	cmd := &cobra.Command{Use: "environment", Short: "Manage Environment resources", RunE: func(cmd *cobra.Command, args []string) error { return cmd.Help() }, SilenceUsage: true, SilenceErrors: true}
	cmd.AddCommand(newCmdAdminEnvironmentList(), newCmdAdminEnvironmentGet(), newCmdAdminEnvironmentCreate(), newCmdAdminEnvironmentUpdate(), newCmdAdminEnvironmentDelete())
	return cmd
}

func newCmdAdminEnvironmentList() *cobra.Command {
	return &cobra.Command{Use: "list", Short: "List environments", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildEnvironmentUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		items, err := u.List(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, it := range items {
			if err := enc.Encode(it); err != nil {
				return err
			}
		}
		return nil
	}}
}

func newCmdAdminEnvironmentGet() *cobra.Command {
	return &cobra.Command{Use: "get <id>", Short: "Get an environment", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildEnvironmentUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		e, err := u.Get(ctx, args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	}}
}

func newCmdAdminEnvironmentCreate() *cobra.Command {
	var file string
	c := &cobra.Command{Use: "create", Short: "Create an environment (from spec file)", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildEnvironmentUseCase(cmd)
		if err != nil {
			return err
		}
		var spec environmentSpec
		if err := readSpec(cmd, file, &spec); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.Create(ctx, &uc.CreateInput{Name: spec.Name, Driver: spec.Driver, Region: spec.Region})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
	c.Flags().StringVarP(&file, "file", "f", "", "Path to environment spec (YAML), or '-' for stdin")
	_ = c.MarkFlagRequired("file")
	return c
}

func newCmdAdminEnvironmentUpdate() *cobra.Command {
	var file string
	c := &cobra.Command{Use: "update <id>", Short: "Update an environment (merge from spec)", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildEnvironmentUseCase(cmd)
		if err != nil {
			return err
		}
		var spec environmentSpec
		if err := readSpec(cmd, file, &spec); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		upd := uc.UpdateCommand{ID: args[0]}
		if spec.Name != "" {
			upd.Name = &spec.Name
		}
		if spec.Driver != "" {
			upd.Driver = &spec.Driver
		}
		if spec.Region != "" {
			upd.Region = &spec.Region
		}
		out, err := u.Update(ctx, upd)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
	c.Flags().StringVarP(&file, "file", "f", "", "Path to environment spec (YAML), or '-' for stdin")
	_ = c.MarkFlagRequired("file")
	return c
}

func newCmdAdminEnvironmentDelete() *cobra.Command {
	return &cobra.Command{Use: "delete <id>", Short: "Delete an environment record", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildEnvironmentUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		_, err = u.Delete(ctx, &uc.DeleteInput{EnvironmentID: args[0]})
		return err
	}}
}
