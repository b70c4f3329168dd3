package main

import (
	"context"
	"encoding/json"
	"time"

	uc "github.com/searchops/searchops/usecase/cluster"
	"github.com/spf13/cobra"
)

type clusterSpec struct {
	Name          string `yaml:"name" json:"name"`
	EnvironmentID string `yaml:"environmentID,omitempty" json:"environmentID,omitempty"`
	Existing      bool   `yaml:"existing,omitempty" json:"existing,omitempty"`
	Version       string `yaml:"version,omitempty" json:"version,omitempty"`
	NodeCount     int    `yaml:"nodeCount,omitempty" json:"nodeCount,omitempty"`
	NodeSize      string `yaml:"nodeSize,omitempty" json:"nodeSize,omitempty"`
}

func newCmdAdminCluster() *cobra.Command {
	cmd := &cobra.Command{Use: "cluster", Short: "Manage Cluster resources", RunE: func(cmd *cobra.Command, args []string) error { return cmd.Help() }, SilenceUsage: true, SilenceErrors: true}
	cmd.AddCommand(newCmdAdminClusterList(), newCmdAdminClusterGet(), newCmdAdminClusterCreate(), newCmdAdminClusterUpdate(), newCmdAdminClusterDelete())
	return cmd
}

func newCmdAdminClusterList() *cobra.Command {
	return &cobra.Command{Use: "list", Short: "List clusters", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildClusterUseCase(cmd)
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

func newCmdAdminClusterGet() *cobra.Command {
	return &cobra.Command{Use: "get <id>", Short: "Get a cluster", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildClusterUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		c, err := u.Get(ctx, args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}}
}

func newCmdAdminClusterCreate() *cobra.Command {
	var file string
	c := &cobra.Command{Use: "create", Short: "Create a cluster (from spec file)", RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildClusterUseCase(cmd)
		if err != nil {
			return err
		}
		var spec clusterSpec
		if err := readSpec(cmd, file, &spec); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := u.Create(ctx, &uc.CreateInput{
			Name:          spec.Name,
			EnvironmentID: spec.EnvironmentID,
			Existing:      spec.Existing,
			Version:       spec.Version,
			NodeCount:     spec.NodeCount,
			NodeSize:      spec.NodeSize,
		})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
	c.Flags().StringVarP(&file, "file", "f", "", "Path to cluster spec (YAML), or '-' for stdin")
	_ = c.MarkFlagRequired("file")
	return c
}

func newCmdAdminClusterUpdate() *cobra.Command {
	var file string
	c := &cobra.Command{Use: "update <id>", Short: "Update a cluster (merge from spec)", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildClusterUseCase(cmd)
		if err != nil {
			return err
		}
		var spec clusterSpec
		if err := readSpec(cmd, file, &spec); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		upd := uc.UpdateCommand{ID: args[0]}
		if spec.Name != "" {
			upd.Name = &spec.Name
		}
		if spec.Version != "" {
			upd.Version = &spec.Version
		}
		if spec.NodeCount != 0 {
			upd.NodeCount = &spec.NodeCount
		}
		if spec.NodeSize != "" {
			upd.NodeSize = &spec.NodeSize
		}
		out, err := u.Update(ctx, upd)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}}
	c.Flags().StringVarP(&file, "file", "f", "", "Path to cluster spec (YAML), or '-' for stdin")
	_ = c.MarkFlagRequired("file")
	return c
}

func newCmdAdminClusterDelete() *cobra.Command {
	return &cobra.Command{Use: "delete <id>", Short: "Delete a cluster record", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		u, err := buildClusterUseCase(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		_, err = u.Delete(ctx, &uc.DeleteInput{ClusterID: args[0]})
		return err
	}}
}
