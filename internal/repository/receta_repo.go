package repository

import (
	"context"

	"abbafoods/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecetaRepository persists recipes together with their ordered ingredients.
type RecetaRepository interface {
	Create(ctx context.Context, r *model.Receta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receta, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Receta, error)
	List(ctx context.Context) ([]model.Receta, error)
	// Update rewrites name and notes and replaces the ingredient list.
	Update(ctx context.Context, r *model.Receta) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type recetaRepo struct{ db *gorm.DB }

func NewRecetaRepository(db *gorm.DB) RecetaRepository { return &recetaRepo{db: db} }

func preloadIngredientes(db *gorm.DB) *gorm.DB {
	return db.Preload("Ingredientes", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).Preload("Ingredientes.Presentacion")
}

func (r *recetaRepo) Create(ctx context.Context, rec *model.Receta) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recetaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Receta, error) {
	var rec model.Receta
	err := preloadIngredientes(r.db.WithContext(ctx)).First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recetaRepo) FindByNombre(ctx context.Context, nombre string) (*model.Receta, error) {
	var rec model.Receta
	err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", nombre).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recetaRepo) List(ctx context.Context) ([]model.Receta, error) {
	var list []model.Receta
	err := preloadIngredientes(r.db.WithContext(ctx)).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *recetaRepo) Update(ctx context.Context, rec *model.Receta) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Receta{}).Where("id = ?", rec.ID).
			Updates(map[string]interface{}{"name": rec.Nombre, "notes": rec.Notas})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&model.IngredienteReceta{}).Error; err != nil {
			return err
		}
		for i := range rec.Ingredientes {
			rec.Ingredientes[i].RecetaID = rec.ID
		}
		if len(rec.Ingredientes) == 0 {
			return nil
		}
		return tx.Omit("Presentacion").Create(&rec.Ingredientes).Error
	})
}

func (r *recetaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Receta{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
