// Package memoria implements the repository interfaces on top of plain maps.
// It backs placeholder mode (no DATABASE_URL) and the service tests. Nothing
// is persisted and missing rows surface as gorm.ErrRecordNotFound, the same
// contract as the GORM repositories.
package memoria

import (
	"sync"
	"time"

	"abbafoods/internal/model"

	"github.com/google/uuid"
)

// Store holds every table. The per-table repositories share its lock.
type Store struct {
	mu sync.RWMutex

	materias       map[uuid.UUID]model.MateriaPrima
	presentaciones map[uuid.UUID]model.PresentacionMaterial
	recetas        map[uuid.UUID]model.Receta
	ordenes        map[uuid.UUID]model.OrdenProduccion
	pedidos        map[uuid.UUID]model.Pedido
	items          map[uuid.UUID]model.PedidoItem

	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		materias:       make(map[uuid.UUID]model.MateriaPrima),
		presentaciones: make(map[uuid.UUID]model.PresentacionMaterial),
		recetas:        make(map[uuid.UUID]model.Receta),
		ordenes:        make(map[uuid.UUID]model.OrdenProduccion),
		pedidos:        make(map[uuid.UUID]model.Pedido),
		items:          make(map[uuid.UUID]model.PedidoItem),
		now:            time.Now,
	}
}

func asignarID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
