package memoria

import (
	"context"
	"sort"

	"abbafoods/internal/model"
	"abbafoods/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type pedidoRepo struct{ s *Store }

var _ repository.PedidoRepository = (*pedidoRepo)(nil)

func NewPedidoRepository(s *Store) repository.PedidoRepository { return &pedidoRepo{s: s} }

func (r *pedidoRepo) Create(_ context.Context, p *model.Pedido) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.pedidos {
		if existing.NumeroPedido == p.NumeroPedido {
			return gorm.ErrDuplicatedKey
		}
	}
	asignarID(&p.ID)
	now := r.s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	stored := *p
	stored.Items = nil
	r.s.pedidos[p.ID] = stored
	return nil
}

func (r *pedidoRepo) CreateItem(_ context.Context, it *model.PedidoItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.pedidos[it.PedidoID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	asignarID(&it.ID)
	if it.Unidad == "" {
		it.Unidad = "L"
	}
	it.CreatedAt = r.s.now()
	r.s.items[it.ID] = *it
	return nil
}

func (r *pedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.Items = r.s.itemsDe(id)
	return &p, nil
}

func (r *pedidoRepo) List(_ context.Context) ([]model.Pedido, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]model.Pedido, 0, len(r.s.pedidos))
	for id, p := range r.s.pedidos {
		p.Items = r.s.itemsDe(id)
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].FechaPedido.Equal(list[j].FechaPedido) {
			return list[i].FechaPedido.After(list[j].FechaPedido)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *pedidoRepo) UpdateDatos(_ context.Context, p *model.Pedido) error {
	return r.modificar(p.ID, func(stored *model.Pedido) {
		stored.ClienteNombre = p.ClienteNombre
		stored.FechaEntrega = p.FechaEntrega
	})
}

func (r *pedidoRepo) UpdateItem(_ context.Context, it *model.PedidoItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.items[it.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.RecetaID = it.RecetaID
	stored.Cantidad = it.Cantidad
	stored.Unidad = it.Unidad
	r.s.items[it.ID] = stored
	return nil
}

func (r *pedidoRepo) AsignarLote(_ context.Context, id uuid.UUID, lote, estado string) error {
	return r.modificar(id, func(p *model.Pedido) {
		p.LoteProduccion = &lote
		p.Estado = estado
	})
}

func (r *pedidoRepo) UpdateEstadoPago(_ context.Context, id uuid.UUID, estado string) error {
	return r.modificar(id, func(p *model.Pedido) { p.EstadoPago = estado })
}

func (r *pedidoRepo) UpdateEstadoEntrega(_ context.Context, id uuid.UUID, estado string) error {
	return r.modificar(id, func(p *model.Pedido) { p.EstadoEntrega = estado })
}

func (r *pedidoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.pedidos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.pedidos, id)
	for itemID, it := range r.s.items {
		if it.PedidoID == id {
			delete(r.s.items, itemID)
		}
	}
	return nil
}

func (r *pedidoRepo) modificar(id uuid.UUID, fn func(*model.Pedido)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pedidos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	fn(&p)
	p.UpdatedAt = r.s.now()
	r.s.pedidos[id] = p
	return nil
}

// itemsDe returns the items of an order in insertion order. Caller holds the lock.
func (s *Store) itemsDe(pedidoID uuid.UUID) []model.PedidoItem {
	items := []model.PedidoItem{}
	for _, it := range s.items {
		if it.PedidoID == pedidoID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items
}
