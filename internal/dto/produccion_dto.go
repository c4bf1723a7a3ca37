package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

// CalcularRequest is used both to preview requirements and to launch an order.
type CalcularRequest struct {
	RecetaID     string          `json:"receta_id"     validate:"required,uuid"`
	VolumenLeche decimal.Decimal `json:"volumen_leche" validate:"min=0"`
}

type TerminarOrdenRequest struct {
	CantidadProducida decimal.Decimal `json:"cantidad_producida" validate:"min=0"`
	Merma             decimal.Decimal `json:"merma"              validate:"min=0"`
}

// OrdenProduccionFilter is bound from the query string of GET /v1/produccion/ordenes.
type OrdenProduccionFilter struct {
	Estado string `form:"estado" validate:"omitempty,oneof=en_proceso terminado"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type RequerimientoResponse struct {
	MaterialID     *uuid.UUID      `json:"material_id,omitempty"`
	MaterialNombre string          `json:"material_nombre"`
	Unidad         string          `json:"unidad"`
	Necesario      decimal.Decimal `json:"necesario"`
	Disponible     decimal.Decimal `json:"disponible"`
	Insuficiente   bool            `json:"insuficiente"`
}

type CalculoResponse struct {
	RecetaID          uuid.UUID               `json:"receta_id"`
	RecetaNombre      string                  `json:"receta_nombre"`
	VolumenLeche      decimal.Decimal         `json:"volumen_leche"`
	LecheDisponible   decimal.Decimal         `json:"leche_disponible"`
	LecheInsuficiente bool                    `json:"leche_insuficiente"`
	Requerimientos    []RequerimientoResponse `json:"requerimientos"`
	PuedeLanzar       bool                    `json:"puede_lanzar"`
}

type OrdenProduccionResponse struct {
	ID                uuid.UUID       `json:"id"`
	RecetaID          uuid.UUID       `json:"receta_id"`
	RecetaNombre      string          `json:"receta_nombre"`
	Fecha             string          `json:"fecha"`
	Lote              string          `json:"lote"`
	Estado            string          `json:"estado"`
	VolumenLeche      decimal.Decimal `json:"volumen_leche"`
	CantidadProducida decimal.Decimal `json:"cantidad_producida"`
	Merma             decimal.Decimal `json:"merma"`
}
