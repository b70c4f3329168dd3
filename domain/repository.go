package domain

import (
	"context"
	"errors"

	"github.com/searchops/searchops/domain/model"
)

// EnvironmentRepository stores and retrieves Environment aggregates.
type EnvironmentRepository interface {
	Create(ctx context.Context, e *model.Environment) error
	Get(ctx context.Context, id string) (*model.Environment, error)
	List(ctx context.Context) ([]*model.Environment, error)
	Update(ctx context.Context, e *model.Environment) error
	Delete(ctx context.Context, id string) error
}

// ClusterRepository stores and retrieves Cluster aggregates.
type ClusterRepository interface {
	Create(ctx context.Context, c *model.Cluster) error
	Get(ctx context.Context, id string) (*model.Cluster, error)
	List(ctx context.Context) ([]*model.Cluster, error)
	Update(ctx context.Context, c *model.Cluster) error
	Delete(ctx context.Context, id string) error
}

// ServiceRepository stores and retrieves Service aggregates.
type ServiceRepository interface {
	Create(ctx context.Context, s *model.Service) error
	Get(ctx context.Context, id string) (*model.Service, error)
	List(ctx context.Context) ([]*model.Service, error)
	Update(ctx context.Context, s *model.Service) error
	Delete(ctx context.Context, id string) error
}

// UnitOfWork coordinates transactional operations.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos *Repositories) error) error
}

// Repositories groups repository interfaces for use inside UnitOfWork.
type Repositories struct {
	Environment EnvironmentRepository
	Cluster     ClusterRepository
	Service     ServiceRepository
}

var ErrUnitOfWorkNotSupported = errors.New("unit of work not supported (memory)")
