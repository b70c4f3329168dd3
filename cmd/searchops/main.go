package main

import (
	"context"
	"os"

	_ "github.com/searchops/searchops/adapters/drivers/provider/eks"
	_ "github.com/searchops/searchops/adapters/drivers/provider/kindlocal"
	"github.com/searchops/searchops/internal/logging"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "searchops",
		Short:   "SearchOps CLI",
		Long:    "SearchOps CLI",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global db-url flag
	defaultDB := os.Getenv("SEARCHOPS_DB_URL")
	if defaultDB == "" {
		defaultDB = "file:searchops.yml"
	}
	cmd.PersistentFlags().String("db-url", defaultDB, "Database URL (env SEARCHOPS_DB_URL) (file:/path/to/searchops.yml | sqlite:/path/to.db)")

	cmd.PersistentFlags().String("log-format", "human", "Log format (human|text|json) (env SEARCHOPS_LOG_FORMAT)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error) (env SEARCHOPS_LOG_LEVEL)")
	cmd.PersistentFlags().String("log-file", "-", "Log destination (-|none|auto|path) (env SEARCHOPS_LOG_FILE)")

	var logFile *logging.LogFile
	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv("SEARCHOPS_LOG_FORMAT"); env != "" { // env overrides flag
			format = env
		}
		levelName, _ := c.Flags().GetString("log-level")
		if env := os.Getenv("SEARCHOPS_LOG_LEVEL"); env != "" {
			levelName = env
		}
		level, err := logging.ParseLevel(levelName)
		if err != nil {
			return err
		}
		output, _ := c.Flags().GetString("log-file")
		if env := os.Getenv("SEARCHOPS_LOG_FILE"); env != "" {
			output = env
		}
		logDir := os.Getenv("SEARCHOPS_LOG_DIR")
		if logDir == "" {
			logDir = "logs"
		}
		lf, err := logging.OpenLogFile(&logging.LogFileConfig{
			Output:        output,
			Dir:           logDir,
			RetentionDays: logging.DefaultRetentionDays,
		})
		if err != nil {
			return err
		}
		logFile = lf
		l, err := logging.NewWithWriter(format, level, lf.Writer())
		if err != nil {
			return err
		}
		ctx := logging.WithLogger(c.Context(), l)
		c.SetContext(ctx)
		return nil
	}
	cmd.PersistentPostRunE = func(*cobra.Command, []string) error {
		if logFile != nil {
			return logFile.Close()
		}
		return nil
	}

	// Add subcommands
	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdConfig())
	cmd.AddCommand(newCmdDeploy())
	cmd.AddCommand(newCmdDestroy())
	cmd.AddCommand(newCmdPreview())
	cmd.AddCommand(newCmdStatus())
	cmd.AddCommand(newCmdCluster())
	cmd.AddCommand(newCmdSecret())
	cmd.AddCommand(newCmdRollout())
	cmd.AddCommand(newCmdAdmin())
	return cmd
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
