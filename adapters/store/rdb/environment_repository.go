package rdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/searchops/searchops/domain"
	"github.com/searchops/searchops/domain/model"
	"gorm.io/gorm"
)

// EnvironmentRepository is a GORM-backed implementation of domain.EnvironmentRepository.
type EnvironmentRepository struct{ db *gorm.DB }

func NewEnvironmentRepository(db *gorm.DB) *EnvironmentRepository {
	return &EnvironmentRepository{db: db}
}

func environmentToRecord(e *model.Environment) *EnvironmentRecord {
	return &EnvironmentRecord{
		ID:        e.ID,
		Name:      e.Name,
		Driver:    e.Driver,
		Region:    e.Region,
		Messaging: encodeJSON(e.Messaging),
		Storage:   encodeJSON(e.Storage),
		Secrets:   encodeJSON(e.Secrets),
		Telemetry: encodeJSON(e.Telemetry),
		Settings:  encodeJSON(e.Settings),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func environmentToModel(r *EnvironmentRecord) *model.Environment {
	e := &model.Environment{
		ID:        r.ID,
		Name:      r.Name,
		Driver:    r.Driver,
		Region:    r.Region,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	decodeJSON(r.Messaging, &e.Messaging)
	decodeJSON(r.Storage, &e.Storage)
	decodeJSON(r.Secrets, &e.Secrets)
	decodeJSON(r.Telemetry, &e.Telemetry)
	decodeJSON(r.Settings, &e.Settings)
	return e
}

func (r *EnvironmentRepository) Create(ctx context.Context, e *model.Environment) error {
	rec := environmentToRecord(e)
	if rec.ID == "" {
		rec.ID = "env-" + uuid.NewString()
		e.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *EnvironmentRepository) Get(ctx context.Context, id string) (*model.Environment, error) {
	var rec EnvironmentRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrEnvironmentNotFound
		}
		return nil, err
	}
	return environmentToModel(&rec), nil
}

func (r *EnvironmentRepository) List(ctx context.Context) ([]*model.Environment, error) {
	var recs []EnvironmentRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Environment, 0, len(recs))
	for i := range recs {
		out = append(out, environmentToModel(&recs[i]))
	}
	return out, nil
}

func (r *EnvironmentRepository) Update(ctx context.Context, e *model.Environment) error {
	rec := environmentToRecord(e)
	return r.db.WithContext(ctx).Model(&EnvironmentRecord{}).Where("id = ?", rec.ID).Updates(rec).Error
}

func (r *EnvironmentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&EnvironmentRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrEnvironmentNotFound
	}
	return nil
}

var _ domain.EnvironmentRepository = (*EnvironmentRepository)(nil)
