package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de materia prima.
const (
	TipoLeche   = "leche"
	TipoInsumo  = "insumo"
	TipoEmpaque = "empaque"
)

// MateriaPrima is a raw material held in the plant's inventory.
// Cantidad and StockMinimo are both expressed in Unidad.
// Stock only changes through manual edits; production never consumes it.
type MateriaPrima struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre           string          `gorm:"column:name;index;not null"`
	Proveedor        *string         `gorm:"column:provider"`
	Cantidad         decimal.Decimal `gorm:"column:quantity;type:decimal(12,3);not null;default:0"`
	Unidad           string          `gorm:"column:unit;not null"`
	FechaVencimiento *time.Time      `gorm:"column:expiry_date;type:date"`
	Tipo             string          `gorm:"column:type;type:varchar(10);not null"`
	StockMinimo      decimal.Decimal `gorm:"column:min_threshold;type:decimal(12,3);not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName maps to the table shared with the dashboard front-end.
func (MateriaPrima) TableName() string { return "materials" }

// StockBajo is true when the current quantity is strictly below the threshold.
func (m MateriaPrima) StockBajo() bool { return m.Cantidad.LessThan(m.StockMinimo) }
