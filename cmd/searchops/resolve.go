package main

import (
	"context"
	"fmt"

	"github.com/searchops/searchops/domain"
)

// resolveEnvironmentID resolves an environment by name or ID. An empty
// selector is accepted when exactly one environment exists.
func resolveEnvironmentID(ctx context.Context, envs domain.EnvironmentRepository, selector string) (string, error) {
	items, err := envs.List(ctx)
	if err != nil {
		return "", err
	}
	if selector == "" {
		if len(items) == 1 {
			return items[0].ID, nil
		}
		return "", fmt.Errorf("environment selector required (--env) when %d environments exist", len(items))
	}
	for _, e := range items {
		if e.ID == selector || e.Name == selector {
			return e.ID, nil
		}
	}
	return "", fmt.Errorf("environment not found: %s", selector)
}

// resolveClusterID resolves a cluster by name or ID. An empty selector
// is accepted when exactly one cluster exists.
func resolveClusterID(ctx context.Context, clusters domain.ClusterRepository, selector string) (string, error) {
	items, err := clusters.List(ctx)
	if err != nil {
		return "", err
	}
	if selector == "" {
		if len(items) == 1 {
			return items[0].ID, nil
		}
		return "", fmt.Errorf("cluster selector required (--cluster) when %d clusters exist", len(items))
	}
	for _, c := range items {
		if c.ID == selector || c.Name == selector {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("cluster not found: %s", selector)
}

// resolveServiceID resolves a service by name or ID.
func resolveServiceID(ctx context.Context, services domain.ServiceRepository, selector string) (string, error) {
	if selector == "" {
		return "", fmt.Errorf("service name required")
	}
	items, err := services.List(ctx)
	if err != nil {
		return "", err
	}
	for _, s := range items {
		if s.ID == selector || s.Name == selector {
			return s.ID, nil
		}
	}
	return "", fmt.Errorf("service not found: %s", selector)
}
