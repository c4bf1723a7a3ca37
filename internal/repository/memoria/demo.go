package memoria

import (
	"time"

	"abbafoods/internal/demo"
	"abbafoods/internal/repository"
)

// NewSet exposes s through the repository interfaces.
func NewSet(s *Store) repository.Set {
	return repository.Set{
		Materias: NewMateriaPrimaRepository(s),
		Recetas:  NewRecetaRepository(s),
		Ordenes:  NewOrdenProduccionRepository(s),
		Pedidos:  NewPedidoRepository(s),
	}
}

// NewDemoStore returns a store preloaded with the placeholder catalog.
func NewDemoStore(now time.Time) *Store {
	s := NewStore()
	Cargar(s, demo.Nuevo(now))
	return s
}

// Cargar copies every row of c into s, keeping the catalog's IDs.
func Cargar(s *Store, c demo.Catalogo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.now()
	for _, m := range c.Materias {
		m.CreatedAt, m.UpdatedAt = ts, ts
		s.materias[m.ID] = m
	}
	for _, p := range c.Presentaciones {
		p.CreatedAt = ts
		s.presentaciones[p.ID] = p
	}
	for _, r := range c.Recetas {
		r.CreatedAt, r.UpdatedAt = ts, ts
		s.recetas[r.ID] = clonarReceta(r)
	}
	for _, o := range c.Ordenes {
		o.CreatedAt, o.UpdatedAt = ts, ts
		s.ordenes[o.ID] = o
	}
	for _, p := range c.Pedidos {
		for _, it := range p.Items {
			it.CreatedAt = ts
			s.items[it.ID] = it
		}
		p.Items = nil
		p.CreatedAt, p.UpdatedAt = ts, ts
		s.pedidos[p.ID] = p
	}
}
