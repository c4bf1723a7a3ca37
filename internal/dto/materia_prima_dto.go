package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CrearMateriaPrimaRequest struct {
	Nombre           string          `json:"nombre"            validate:"required,min=2,max=120"`
	Proveedor        *string         `json:"proveedor"         validate:"omitempty,max=120"`
	Cantidad         decimal.Decimal `json:"cantidad"          validate:"min=0"`
	Unidad           string          `json:"unidad"            validate:"required,max=20"`
	FechaVencimiento *string         `json:"fecha_vencimiento"`
	Tipo             string          `json:"tipo"              validate:"required,oneof=leche insumo empaque"`
	StockMinimo      decimal.Decimal `json:"stock_minimo"      validate:"min=0"`
}

// ActualizarMateriaPrimaRequest is a partial update: nil fields are left as is.
// An empty FechaVencimiento clears the expiry date.
type ActualizarMateriaPrimaRequest struct {
	Nombre           *string          `json:"nombre"            validate:"omitempty,min=2,max=120"`
	Proveedor        *string          `json:"proveedor"         validate:"omitempty,max=120"`
	Cantidad         *decimal.Decimal `json:"cantidad"          validate:"omitempty,min=0"`
	Unidad           *string          `json:"unidad"            validate:"omitempty,min=1,max=20"`
	FechaVencimiento *string          `json:"fecha_vencimiento"`
	Tipo             *string          `json:"tipo"              validate:"omitempty,oneof=leche insumo empaque"`
	StockMinimo      *decimal.Decimal `json:"stock_minimo"      validate:"omitempty,min=0"`
}

type CrearPresentacionRequest struct {
	Descripcion   string          `json:"descripcion"    validate:"required,min=2,max=120"`
	TamanoPaquete decimal.Decimal `json:"tamano_paquete" validate:"gt=0"`
	Unidad        string          `json:"unidad"         validate:"required,max=20"`
	Costo         decimal.Decimal `json:"costo"          validate:"min=0"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type MateriaPrimaResponse struct {
	ID               uuid.UUID       `json:"id"`
	Nombre           string          `json:"nombre"`
	Proveedor        *string         `json:"proveedor,omitempty"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	Unidad           string          `json:"unidad"`
	FechaVencimiento string          `json:"fecha_vencimiento"` // YYYY-MM-DD or "N/A"
	Tipo             string          `json:"tipo"`
	StockMinimo      decimal.Decimal `json:"stock_minimo"`
	StockBajo        bool            `json:"stock_bajo"`
}

type AlertaStockResponse struct {
	MaterialID  uuid.UUID       `json:"material_id"`
	Nombre      string          `json:"nombre"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	StockMinimo decimal.Decimal `json:"stock_minimo"`
	Unidad      string          `json:"unidad"`
	Faltante    decimal.Decimal `json:"faltante"`
}

type PresentacionResponse struct {
	ID            uuid.UUID       `json:"id"`
	MaterialID    uuid.UUID       `json:"material_id"`
	Descripcion   string          `json:"descripcion"`
	TamanoPaquete decimal.Decimal `json:"tamano_paquete"`
	Unidad        string          `json:"unidad"`
	Costo         decimal.Decimal `json:"costo"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
}
