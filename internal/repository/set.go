package repository

import "gorm.io/gorm"

// Set groups the repositories the services need, so the composition root can
// swap the Postgres implementations for the in-memory ones.
type Set struct {
	Materias MateriaPrimaRepository
	Recetas  RecetaRepository
	Ordenes  OrdenProduccionRepository
	Pedidos  PedidoRepository
}

func NewSet(db *gorm.DB) Set {
	return Set{
		Materias: NewMateriaPrimaRepository(db),
		Recetas:  NewRecetaRepository(db),
		Ordenes:  NewOrdenProduccionRepository(db),
		Pedidos:  NewPedidoRepository(db),
	}
}
