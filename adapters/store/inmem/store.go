package inmem

import (
	"context"

	"github.com/searchops/searchops/config/searchopscfg"
	"github.com/searchops/searchops/domain"
)

// Store provides a unified interface for all in-memory repositories.
type Store struct {
	EnvironmentRepo *EnvironmentRepository
	ClusterRepo     *ClusterRepository
	ServiceRepo     *ServiceRepository

	// ConfigRoot retains the configuration the store was seeded from.
	ConfigRoot *searchopscfg.Root
}

// NewStore creates a new in-memory store with all repositories.
func NewStore() *Store {
	return &Store{
		EnvironmentRepo: NewEnvironmentRepository(),
		ClusterRepo:     NewClusterRepository(),
		ServiceRepo:     NewServiceRepository(),
	}
}

// LoadFromConfig loads a searchops.yml configuration into the memory store.
func (s *Store) LoadFromConfig(ctx context.Context, cfg *searchopscfg.Root) error {
	env, cluster, services, err := cfg.ToModels()
	if err != nil {
		return err
	}

	// Store models in dependency order: environment → cluster → services
	if err := s.EnvironmentRepo.Create(ctx, env); err != nil {
		return err
	}
	if err := s.ClusterRepo.Create(ctx, cluster); err != nil {
		return err
	}
	for _, svc := range services {
		if err := s.ServiceRepo.Create(ctx, svc); err != nil {
			return err
		}
	}

	s.ConfigRoot = cfg
	return nil
}

// LoadFromFile loads a searchops.yml file into the memory store.
func (s *Store) LoadFromFile(ctx context.Context, path string) error {
	cfg, err := searchopscfg.Load(path)
	if err != nil {
		return err
	}
	return s.LoadFromConfig(ctx, cfg)
}

// Compile-time assertions
var _ domain.EnvironmentRepository = (*EnvironmentRepository)(nil)
var _ domain.ClusterRepository = (*ClusterRepository)(nil)
var _ domain.ServiceRepository = (*ServiceRepository)(nil)
