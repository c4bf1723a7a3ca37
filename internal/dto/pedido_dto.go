package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

// GuardarPedidoRequest is the body for both create and update. An order is
// entered with a single product line.
type GuardarPedidoRequest struct {
	ClienteNombre string          `json:"cliente_nombre" validate:"required,min=1,max=120"`
	FechaEntrega  *string         `json:"fecha_entrega"`
	RecetaID      string          `json:"receta_id"      validate:"required,uuid"`
	Cantidad      decimal.Decimal `json:"cantidad"       validate:"gt=0"`
	Unidad        string          `json:"unidad"         validate:"omitempty,max=20"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type PedidoItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	RecetaID     uuid.UUID       `json:"receta_id"`
	RecetaNombre string          `json:"receta_nombre"`
	Cantidad     decimal.Decimal `json:"cantidad"`
	Unidad       string          `json:"unidad"`
}

type PedidoResponse struct {
	ID             uuid.UUID            `json:"id"`
	NumeroPedido   string               `json:"numero_pedido"`
	ClienteNombre  string               `json:"cliente_nombre"`
	FechaPedido    string               `json:"fecha_pedido"`
	FechaEntrega   *string              `json:"fecha_entrega,omitempty"`
	Estado         string               `json:"estado"`
	LoteProduccion *string              `json:"lote_produccion,omitempty"`
	Items          []PedidoItemResponse `json:"items"`
	Resumen        string               `json:"resumen"`
}
