package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newCmdAdmin returns the parent command for direct resource management.
func newCmdAdmin() *cobra.Command {
	c := &cobra.Command{
		Use:   "admin",
		Short: "Manage resources directly",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdAdminEnvironment())
	c.AddCommand(newCmdAdminCluster())
	c.AddCommand(newCmdAdminService())
	return c
}

// readSpec decodes a YAML spec from a file or stdin ("-").
func readSpec(cmd *cobra.Command, path string, spec any) error {
	if path == "" {
		return errors.New("spec file required (-f)")
	}
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, spec)
}
