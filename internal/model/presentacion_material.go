package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PresentacionMaterial is the purchase format of a raw material
// (e.g. "Caja x 50 sobres" at a given cost). Only used to show costs.
type PresentacionMaterial struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MaterialID    uuid.UUID       `gorm:"column:material_id;type:uuid;not null;index"`
	Descripcion   string          `gorm:"column:description;not null"`
	TamanoPaquete decimal.Decimal `gorm:"column:package_size;type:decimal(12,3);not null"`
	Unidad        string          `gorm:"column:unit;not null"`
	Costo         decimal.Decimal `gorm:"column:cost;type:decimal(12,2);not null;default:0"`
	CreatedAt     time.Time
}

func (PresentacionMaterial) TableName() string { return "material_presentations" }

// CostoUnitario returns the cost of one unit of the package content.
func (p PresentacionMaterial) CostoUnitario() decimal.Decimal {
	if p.TamanoPaquete.IsZero() {
		return decimal.Zero
	}
	return p.Costo.Div(p.TamanoPaquete).Round(4)
}
