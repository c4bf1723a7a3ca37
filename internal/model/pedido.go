package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EstadoPendiente = "pendiente"

	PagoPendiente = "pendiente"
	PagoPagado    = "pagado"

	EntregaPendiente = "pendiente"
	EntregaEntregado = "entregado"
)

// Etiquetas de venta derivadas de los estados de pago y entrega.
const (
	EtiquetaDespachadoCancelado   = "DESPACHADO Y CANCELADO"
	EtiquetaDespachadoPorCancelar = "DESPACHADO POR CANCELAR"
	EtiquetaPrepagado             = "PREPAGADO"
	EtiquetaPendiente             = "PENDIENTE"
)

// Pedido is a customer order. Once LoteProduccion is set the order is linked
// to a production run and can no longer be deleted.
type Pedido struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroPedido   string     `gorm:"column:order_number;uniqueIndex;not null"`
	ClienteNombre  string     `gorm:"column:client_name;not null"`
	FechaPedido    time.Time  `gorm:"column:order_date;type:date;not null"`
	FechaEntrega   *time.Time `gorm:"column:delivery_date;type:date"`
	Estado         string     `gorm:"column:status;type:varchar(20);not null;default:'pendiente'"`
	LoteProduccion *string    `gorm:"column:production_batch"`
	EstadoPago     string     `gorm:"column:payment_status;type:varchar(20);not null;default:'pendiente'"`
	EstadoEntrega  string     `gorm:"column:delivery_status;type:varchar(20);not null;default:'pendiente'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items []PedidoItem `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
}

func (Pedido) TableName() string { return "orders" }

func (p Pedido) Pagado() bool    { return p.EstadoPago == PagoPagado }
func (p Pedido) Entregado() bool { return p.EstadoEntrega == EntregaEntregado }

// EtiquetaVenta derives the sales badge from the payment and delivery flags.
func (p Pedido) EtiquetaVenta() string {
	switch {
	case p.Entregado() && p.Pagado():
		return EtiquetaDespachadoCancelado
	case p.Entregado():
		return EtiquetaDespachadoPorCancelar
	case p.Pagado():
		return EtiquetaPrepagado
	default:
		return EtiquetaPendiente
	}
}

// PedidoItem is one line of an order: a recipe and the quantity requested.
type PedidoItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID  uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	RecetaID  uuid.UUID       `gorm:"column:recipe_id;type:uuid;not null"`
	Cantidad  decimal.Decimal `gorm:"column:quantity;type:decimal(12,3);not null"`
	Unidad    string          `gorm:"column:unit;not null;default:'L'"`
	CreatedAt time.Time
}

func (PedidoItem) TableName() string { return "order_items" }
