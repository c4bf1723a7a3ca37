package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

// IngredienteRequest carries one per-liter coefficient. Order in the slice is
// the order of the recipe.
type IngredienteRequest struct {
	MaterialID       *string         `json:"material_id"        validate:"omitempty,uuid"`
	MaterialNombre   string          `json:"material_nombre"    validate:"required,min=1,max=120"`
	CantidadPorLitro decimal.Decimal `json:"cantidad_por_litro" validate:"gt=0"`
	Unidad           string          `json:"unidad"             validate:"required,max=20"`
	PresentacionID   *string         `json:"presentacion_id"    validate:"omitempty,uuid"`
}

type CrearRecetaRequest struct {
	Nombre       string               `json:"nombre"       validate:"required,min=2,max=120"`
	Notas        string               `json:"notas"        validate:"max=2000"`
	Ingredientes []IngredienteRequest `json:"ingredientes" validate:"required,min=1,dive"`
}

// ActualizarRecetaRequest replaces name, notes and the whole ingredient list.
type ActualizarRecetaRequest struct {
	Nombre       string               `json:"nombre"       validate:"required,min=2,max=120"`
	Notas        string               `json:"notas"        validate:"max=2000"`
	Ingredientes []IngredienteRequest `json:"ingredientes" validate:"required,min=1,dive"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type IngredienteResponse struct {
	ID               uuid.UUID        `json:"id"`
	MaterialID       *uuid.UUID       `json:"material_id,omitempty"`
	MaterialNombre   string           `json:"material_nombre"`
	CantidadPorLitro decimal.Decimal  `json:"cantidad_por_litro"`
	Unidad           string           `json:"unidad"`
	PresentacionID   *uuid.UUID       `json:"presentacion_id,omitempty"`
	Presentacion     *string          `json:"presentacion,omitempty"`
	CostoUnitario    *decimal.Decimal `json:"costo_unitario,omitempty"`
	CostoPorLitro    *decimal.Decimal `json:"costo_por_litro,omitempty"`
}

type RecetaResponse struct {
	ID            uuid.UUID             `json:"id"`
	Nombre        string                `json:"nombre"`
	Notas         string                `json:"notas"`
	BaseLeche     decimal.Decimal       `json:"base_leche"` // always 1 L
	Ingredientes  []IngredienteResponse `json:"ingredientes"`
	CostoPorLitro decimal.Decimal       `json:"costo_por_litro"`
}
