package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/searchops/searchops/domain"
	"github.com/searchops/searchops/domain/model"
)

// ServiceRepository is a thread-safe in-memory implementation.
type ServiceRepository struct {
	mu    sync.RWMutex
	items map[string]*model.Service
	seq   int64
}

func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{items: make(map[string]*model.Service)}
}

func (r *ServiceRepository) nextID() string {
	r.seq++
	return fmt.Sprintf("svc-%d-%d", time.Now().UnixNano(), r.seq)
}

func (r *ServiceRepository) Create(_ context.Context, s *model.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = r.nextID()
	}
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *ServiceRepository) Get(_ context.Context, id string) (*model.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrServiceNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *ServiceRepository) List(_ context.Context) ([]*model.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Service, 0, len(r.items))
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ServiceRepository) Update(_ context.Context, s *model.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[s.ID]; !ok {
		return model.ErrServiceNotFound
	}
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *ServiceRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return model.ErrServiceNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.ServiceRepository = (*ServiceRepository)(nil)
