package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receta is a formula normalized to one liter of milk: every ingredient
// amount is "per 1 L of milk base".
type Receta struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"column:name;not null"`
	Notas     string    `gorm:"column:notes"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Ingredientes []IngredienteReceta `gorm:"foreignKey:RecetaID;constraint:OnDelete:CASCADE"`
}

func (Receta) TableName() string { return "recipes" }

// IngredienteReceta is one coefficient of a recipe. MaterialID links it to
// the inventory; without it the ingredient never matches any stock.
type IngredienteReceta struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecetaID         uuid.UUID       `gorm:"column:recipe_id;type:uuid;not null;index"`
	MaterialID       *uuid.UUID      `gorm:"column:material_id;type:uuid"`
	MaterialNombre   string          `gorm:"column:material_name;not null"`
	CantidadPorLitro decimal.Decimal `gorm:"column:amount_per_liter;type:decimal(12,4);not null"`
	Unidad           string          `gorm:"column:unit;not null"`
	PresentacionID   *uuid.UUID      `gorm:"column:presentation_id;type:uuid"`
	Posicion         int             `gorm:"column:position;not null;default:0"`

	Presentacion *PresentacionMaterial `gorm:"foreignKey:PresentacionID"`
}

func (IngredienteReceta) TableName() string { return "recipe_ingredients" }
