package rdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/searchops/searchops/domain"
	"github.com/searchops/searchops/domain/model"
	"gorm.io/gorm"
)

// ServiceRepository is a GORM-backed implementation of domain.ServiceRepository.
type ServiceRepository struct{ db *gorm.DB }

func NewServiceRepository(db *gorm.DB) *ServiceRepository { return &ServiceRepository{db: db} }

func serviceToRecord(s *model.Service) *ServiceRecord {
	return &ServiceRecord{
		ID:             s.ID,
		Name:           s.Name,
		ClusterID:      s.ClusterID,
		Image:          s.Image,
		Port:           s.Port,
		Replicas:       s.Replicas,
		ServiceAccount: s.ServiceAccount,
		Env:            encodeJSON(s.Env),
		Resources:      encodeJSON(s.Resources),
		Ingress:        encodeJSON(s.Ingress),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func serviceToModel(r *ServiceRecord) *model.Service {
	s := &model.Service{
		ID:             r.ID,
		Name:           r.Name,
		ClusterID:      r.ClusterID,
		Image:          r.Image,
		Port:           r.Port,
		Replicas:       r.Replicas,
		ServiceAccount: r.ServiceAccount,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	decodeJSON(r.Env, &s.Env)
	decodeJSON(r.Resources, &s.Resources)
	decodeJSON(r.Ingress, &s.Ingress)
	return s
}

func (r *ServiceRepository) Create(ctx context.Context, s *model.Service) error {
	rec := serviceToRecord(s)
	if rec.ID == "" {
		rec.ID = "svc-" + uuid.NewString()
		s.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ServiceRepository) Get(ctx context.Context, id string) (*model.Service, error) {
	var rec ServiceRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrServiceNotFound
		}
		return nil, err
	}
	return serviceToModel(&rec), nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]*model.Service, error) {
	var recs []ServiceRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Service, 0, len(recs))
	for i := range recs {
		out = append(out, serviceToModel(&recs[i]))
	}
	return out, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *model.Service) error {
	rec := serviceToRecord(s)
	return r.db.WithContext(ctx).Model(&ServiceRecord{}).Where("id = ?", rec.ID).Updates(rec).Error
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&ServiceRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrServiceNotFound
	}
	return nil
}

var _ domain.ServiceRepository = (*ServiceRepository)(nil)
