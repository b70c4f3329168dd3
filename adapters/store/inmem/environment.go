package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/searchops/searchops/domain"
	"github.com/searchops/searchops/domain/model"
)

// EnvironmentRepository is a thread-safe in-memory implementation.
type EnvironmentRepository struct {
	mu    sync.RWMutex
	items map[string]*model.Environment
	seq   int64
}

func NewEnvironmentRepository() *EnvironmentRepository {
	return &EnvironmentRepository{items: make(map[string]*model.Environment)}
}

func (r *EnvironmentRepository) nextID() string {
	r.seq++
	return fmt.Sprintf("env-%d-%d", time.Now().UnixNano(), r.seq)
}

func (r *EnvironmentRepository) Create(_ context.Context, e *model.Environment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == "" {
		e.ID = r.nextID()
	}
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *EnvironmentRepository) Get(_ context.Context, id string) (*model.Environment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrEnvironmentNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *EnvironmentRepository) List(_ context.Context) ([]*model.Environment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Environment, 0, len(r.items))
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *EnvironmentRepository) Update(_ context.Context, e *model.Environment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[e.ID]; !ok {
		return model.ErrEnvironmentNotFound
	}
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *EnvironmentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return model.ErrEnvironmentNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.EnvironmentRepository = (*EnvironmentRepository)(nil)
