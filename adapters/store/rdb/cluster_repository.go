package rdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/searchops/searchops/domain"
	"github.com/searchops/searchops/domain/model"
	"gorm.io/gorm"
)

// ClusterRepository is a GORM-backed implementation of domain.ClusterRepository.
type ClusterRepository struct{ db *gorm.DB }

func NewClusterRepository(db *gorm.DB) *ClusterRepository { return &ClusterRepository{db: db} }

func clusterToRecord(c *model.Cluster) *ClusterRecord {
	return &ClusterRecord{
		ID:            c.ID,
		Name:          c.Name,
		EnvironmentID: c.EnvironmentID,
		Existing:      c.Existing,
		Version:       c.Version,
		NodeCount:     c.NodeCount,
		NodeSize:      c.NodeSize,
		Domain:        c.Domain,
		Ingress:       encodeJSON(c.Ingress),
		Settings:      encodeJSON(c.Settings),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func clusterToModel(r *ClusterRecord) *model.Cluster {
	c := &model.Cluster{
		ID:            r.ID,
		Name:          r.Name,
		EnvironmentID: r.EnvironmentID,
		Existing:      r.Existing,
		Version:       r.Version,
		NodeCount:     r.NodeCount,
		NodeSize:      r.NodeSize,
		Domain:        r.Domain,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	decodeJSON(r.Ingress, &c.Ingress)
	decodeJSON(r.Settings, &c.Settings)
	return c
}

func (r *ClusterRepository) Create(ctx context.Context, c *model.Cluster) error {
	rec := clusterToRecord(c)
	if rec.ID == "" {
		rec.ID = "clus-" + uuid.NewString()
		c.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ClusterRepository) Get(ctx context.Context, id string) (*model.Cluster, error) {
	var rec ClusterRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrClusterNotFound
		}
		return nil, err
	}
	return clusterToModel(&rec), nil
}

func (r *ClusterRepository) List(ctx context.Context) ([]*model.Cluster, error) {
	var recs []ClusterRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Cluster, 0, len(recs))
	for i := range recs {
		out = append(out, clusterToModel(&recs[i]))
	}
	return out, nil
}

func (r *ClusterRepository) Update(ctx context.Context, c *model.Cluster) error {
	rec := clusterToRecord(c)
	return r.db.WithContext(ctx).Model(&ClusterRecord{}).Where("id = ?", rec.ID).Updates(rec).Error
}

func (r *ClusterRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&ClusterRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrClusterNotFound
	}
	return nil
}

var _ domain.ClusterRepository = (*ClusterRepository)(nil)
