package dto

import "github.com/google/uuid"

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Filtro string `form:"filtro,default=all" validate:"oneof=all preventas realizadas"`
}

type EstadoPagoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente pagado"`
}

type EstadoEntregaRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente entregado"`
}

type VentaResponse struct {
	ID            uuid.UUID `json:"id"`
	NumeroPedido  string    `json:"numero_pedido"`
	ClienteNombre string    `json:"cliente_nombre"`
	FechaPedido   string    `json:"fecha_pedido"`
	FechaEntrega  *string   `json:"fecha_entrega,omitempty"`
	Productos     string    `json:"productos"`
	EstadoPago    string    `json:"estado_pago"`
	EstadoEntrega string    `json:"estado_entrega"`
	Etiqueta      string    `json:"etiqueta"`
}
