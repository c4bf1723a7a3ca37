package repository

import (
	"context"
	"time"

	"abbafoods/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrdenProduccionFilter narrows List. Zero values mean "no filter".
type OrdenProduccionFilter struct {
	Estado string
	Desde  time.Time
}

type OrdenProduccionRepository interface {
	Create(ctx context.Context, o *model.OrdenProduccion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenProduccion, error)
	// List returns orders newest first.
	List(ctx context.Context, filter OrdenProduccionFilter) ([]model.OrdenProduccion, error)
	Update(ctx context.Context, o *model.OrdenProduccion) error
	CountByReceta(ctx context.Context, recetaID uuid.UUID) (int64, error)
}

type ordenProduccionRepo struct{ db *gorm.DB }

func NewOrdenProduccionRepository(db *gorm.DB) OrdenProduccionRepository {
	return &ordenProduccionRepo{db: db}
}

func (r *ordenProduccionRepo) Create(ctx context.Context, o *model.OrdenProduccion) error {
	return r.db.WithContext(ctx).Omit("Receta").Create(o).Error
}

func (r *ordenProduccionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenProduccion, error) {
	var o model.OrdenProduccion
	err := r.db.WithContext(ctx).Preload("Receta").First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordenProduccionRepo) List(ctx context.Context, filter OrdenProduccionFilter) ([]model.OrdenProduccion, error) {
	var list []model.OrdenProduccion
	q := r.db.WithContext(ctx).Preload("Receta")
	if filter.Estado != "" {
		q = q.Where("status = ?", filter.Estado)
	}
	if !filter.Desde.IsZero() {
		q = q.Where("date >= ?", filter.Desde)
	}
	err := q.Order("date DESC, created_at DESC").Find(&list).Error
	return list, err
}

func (r *ordenProduccionRepo) Update(ctx context.Context, o *model.OrdenProduccion) error {
	return r.db.WithContext(ctx).Omit("Receta").Save(o).Error
}

func (r *ordenProduccionRepo) CountByReceta(ctx context.Context, recetaID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.OrdenProduccion{}).Where("recipe_id = ?", recetaID).Count(&n).Error
	return n, err
}
