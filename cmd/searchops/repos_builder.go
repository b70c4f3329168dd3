package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/searchops/searchops/adapters/store/inmem"
	"github.com/searchops/searchops/adapters/store/rdb"
	"github.com/searchops/searchops/config/searchopscfg"
	"github.com/searchops/searchops/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// configRoot holds the loaded configuration.
var configRoot *searchopscfg.Root

// findFlag walks the command hierarchy looking for a flag.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

// getDBURL extracts the db-url flag value from command hierarchy.
func getDBURL(cmd *cobra.Command) string {
	f := findFlag(cmd, "db-url")
	if f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return "file:searchops.yml"
}

// buildRepos creates repositories based on db-url.
// If db-url starts with "file:", it loads the configuration file into memory store.
func buildRepos(cmd *cobra.Command) (*domain.Repositories, error) {
	dbURL := getDBURL(cmd)

	switch {
	case strings.HasPrefix(dbURL, "file:"):
		filePath := strings.TrimPrefix(dbURL, "file:")
		if filePath == "" {
			return nil, fmt.Errorf("file path is required for file: URL")
		}

		store := inmem.NewStore()
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := store.LoadFromFile(ctx, filePath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", filePath, err)
		}

		configRoot = store.ConfigRoot

		return &domain.Repositories{
			Environment: store.EnvironmentRepo,
			Cluster:     store.ClusterRepo,
			Service:     store.ServiceRepo,
		}, nil

	case strings.HasPrefix(dbURL, "sqlite:") || strings.HasPrefix(dbURL, "sqlite3:"):
		db, err := rdb.OpenFromURL(dbURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, err
		}
		return &domain.Repositories{
			Environment: rdb.NewEnvironmentRepository(db),
			Cluster:     rdb.NewClusterRepository(db),
			Service:     rdb.NewServiceRepository(db),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", dbURL)
	}
}
