package repository

import (
	"context"

	"abbafoods/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MateriaPrimaRepository defines the data access contract for raw materials
// and their purchase presentations. Missing rows surface as
// gorm.ErrRecordNotFound.
type MateriaPrimaRepository interface {
	Create(ctx context.Context, m *model.MateriaPrima) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MateriaPrima, error)
	List(ctx context.Context) ([]model.MateriaPrima, error)
	Update(ctx context.Context, m *model.MateriaPrima) error

	CreatePresentacion(ctx context.Context, p *model.PresentacionMaterial) error
	ListPresentaciones(ctx context.Context, materialID uuid.UUID) ([]model.PresentacionMaterial, error)
}

type materiaPrimaRepo struct{ db *gorm.DB }

func NewMateriaPrimaRepository(db *gorm.DB) MateriaPrimaRepository {
	return &materiaPrimaRepo{db: db}
}

func (r *materiaPrimaRepo) Create(ctx context.Context, m *model.MateriaPrima) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materiaPrimaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MateriaPrima, error) {
	var m model.MateriaPrima
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materiaPrimaRepo) List(ctx context.Context) ([]model.MateriaPrima, error) {
	var list []model.MateriaPrima
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *materiaPrimaRepo) Update(ctx context.Context, m *model.MateriaPrima) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *materiaPrimaRepo) CreatePresentacion(ctx context.Context, p *model.PresentacionMaterial) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *materiaPrimaRepo) ListPresentaciones(ctx context.Context, materialID uuid.UUID) ([]model.PresentacionMaterial, error) {
	var list []model.PresentacionMaterial
	err := r.db.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("description ASC").
		Find(&list).Error
	return list, err
}
