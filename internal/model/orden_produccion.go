package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una orden de producción (también usados por pedidos).
const (
	EstadoEnProceso = "en_proceso"
	EstadoTerminado = "terminado"
)

// OrdenProduccion is one production run (a batch) of a recipe.
type OrdenProduccion struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecetaID          uuid.UUID       `gorm:"column:recipe_id;type:uuid;not null;index"`
	Fecha             time.Time       `gorm:"column:date;type:date;not null"`
	Lote              string          `gorm:"column:batch;not null;index"`
	Estado            string          `gorm:"column:status;type:varchar(20);not null;default:'en_proceso'"`
	VolumenLeche      decimal.Decimal `gorm:"column:milk_volume;type:decimal(12,3);not null"`
	CantidadProducida decimal.Decimal `gorm:"column:quantity_produced;type:decimal(12,3);not null;default:0"`
	Merma             decimal.Decimal `gorm:"column:waste;type:decimal(12,3);not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Receta *Receta `gorm:"foreignKey:RecetaID"`
}

func (OrdenProduccion) TableName() string { return "production_orders" }
