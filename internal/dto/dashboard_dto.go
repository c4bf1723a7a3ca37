package dto

import "github.com/shopspring/decimal"

type LecheDiaResponse struct {
	Dia    string          `json:"dia"` // Lun, Mar, ...
	Fecha  string          `json:"fecha"`
	Litros decimal.Decimal `json:"litros"`
}

type MixProductoResponse struct {
	RecetaNombre string          `json:"receta_nombre"`
	Cantidad     decimal.Decimal `json:"cantidad"`
}

type DashboardResponse struct {
	LecheEnStock     decimal.Decimal       `json:"leche_en_stock"`
	OrdenesEnProceso int                   `json:"ordenes_en_proceso"`
	PedidosHoy       int                   `json:"pedidos_hoy"`
	Alertas          []AlertaStockResponse `json:"alertas"`
	LecheProcesada   []LecheDiaResponse    `json:"leche_procesada"`
	MixProductos     []MixProductoResponse `json:"mix_productos"`
}
