package main

import (
	"context"
	"encoding/json"
	"time"

	uc "github.com/searchops/searchops/usecase/service"
	"github.com/spf13/cobra"
)

type serviceSpec struct {
	Name           string            `yaml:"name" json:"name"`
	ClusterID      string            `yaml:"clusterID,omitempty" json:"clusterID,omitempty"`
	Image          string            `yaml:"image,omitempty" json:"image,omitempty"`
	Port           int               `yaml:"port,omitempty" json:"port,omitempty"`
	Replicas       int               `yaml:"replicas,omitempty" json:"replicas,omitempty"`
	ServiceAccount string            `yaml:"serviceAccount,omitempty" json:"serviceAccount,omitempty"`
	Env            map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	Resources      map[string]string `yaml:"resources,omitempty" json:"resources,omitempty"`
}

func newCmdAdminService() *cobra.Command {
	cmd := &cobra.Command{Use: "service", Short: "Manage Service resources", RunE: func(cmd *cobra.Command, args []string) error { return cmd.Help() }, SilenceUsage: true, SilenceErrors: true}
	cmd.AddCommand(newCmdAdminServiceList(), newCmdAdminServiceGet(), newCmdAdminServiceCreate(), newCmdAdminServiceUpdate(), newCmdAdminServiceDelete())
	return cmd
}

func newCmdAdminServiceList() *cobra.Command {
	return &cobra.Command{Use: "list", Short: "List services", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildServiceUseCase(cmd)
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

func newCmdAdminServiceGet() *cobra.Command {
	return &cobra.Command{Use: "get <id>", Short: "Get a service", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildServiceUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		s, err := u.Get(ctx, args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}}
}

func newCmdAdminServiceCreate() *cobra.Command {
	var file string
	c := &cobra.Command{Use: "create", Short: "Create a service (from spec file)", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildServiceUseCase(cmd)
		if err != nil {
			return err
		}
		var spec serviceSpec
		if err := readSpec(cmd, file, &spec); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.Create(ctx, &uc.CreateInput{
			Name:           spec.Name,
			ClusterID:      spec.ClusterID,
			Image:          spec.Image,
			Port:           spec.Port,
			Replicas:       spec.Replicas,
			ServiceAccount: spec.ServiceAccount,
			Env:            spec.Env,
			Resources:      spec.Resources,
		})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
	c.Flags().StringVarP(&file, "file", "f", "", "Path to service spec (YAML), or '-' for stdin")
	_ = c.MarkFlagRequired("file")
	return c
}

func newCmdAdminServiceUpdate() *cobra.Command {
	var file string
	c := &cobra.Command{Use: "update <id>", Short: "Update a service (merge from spec)", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildServiceUseCase(cmd)
		if err != nil {
			return err
		}
		var spec serviceSpec
		if err := readSpec(cmd, file, &spec); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		upd := uc.UpdateCommand{ID: args[0]}
		if spec.Name != "" {
			upd.Name = &spec.Name
		}
		if spec.Image != "" {
			upd.Image = &spec.Image
		}
		if spec.Port != 0 {
			upd.Port = &spec.Port
		}
		if spec.Replicas != 0 {
			upd.Replicas = &spec.Replicas
		}
		if spec.Env != nil {
			upd.Env = &spec.Env
		}
		out, err := u.Update(ctx, upd)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
	c.Flags().StringVarP(&file, "file", "f", "", "Path to service spec (YAML), or '-' for stdin")
	_ = c.MarkFlagRequired("file")
	return c
}

func newCmdAdminServiceDelete() *cobra.Command {
	return &cobra.Command{Use: "delete <id>", Short: "Delete a service record", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildServiceUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		_, err = u.Delete(ctx, &uc.DeleteInput{ServiceID: args[0]})
		return err
	}}
}
