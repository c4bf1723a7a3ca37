package memoria

import (
	"context"
	"sort"

	"abbafoods/internal/model"
	"abbafoods/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ordenProduccionRepo struct{ s *Store }

var _ repository.OrdenProduccionRepository = (*ordenProduccionRepo)(nil)

func NewOrdenProduccionRepository(s *Store) repository.OrdenProduccionRepository {
	return &ordenProduccionRepo{s: s}
}

func (r *ordenProduccionRepo) Create(_ context.Context, o *model.OrdenProduccion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.recetas[o.RecetaID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	asignarID(&o.ID)
	now := r.s.now()
	o.CreatedAt, o.UpdatedAt = now, now
	stored := *o
	stored.Receta = nil
	r.s.ordenes[o.ID] = stored
	return nil
}

func (r *ordenProduccionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.OrdenProduccion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.ordenes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	o = r.s.conReceta(o)
	return &o, nil
}

func (r *ordenProduccionRepo) List(_ context.Context, f repository.OrdenProduccionFilter) ([]model.OrdenProduccion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := []model.OrdenProduccion{}
	for _, o := range r.s.ordenes {
		if f.Estado != "" && o.Estado != f.Estado {
			continue
		}
		if !f.Desde.IsZero() && o.Fecha.Before(f.Desde) {
			continue
		}
		list = append(list, r.s.conReceta(o))
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Fecha.Equal(list[j].Fecha) {
			return list[i].Fecha.After(list[j].Fecha)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *ordenProduccionRepo) Update(_ context.Context, o *model.OrdenProduccion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.ordenes[o.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	o.UpdatedAt = r.s.now()
	stored := *o
	stored.Receta = nil
	r.s.ordenes[o.ID] = stored
	return nil
}

func (r *ordenProduccionRepo) CountByReceta(_ context.Context, recetaID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, o := range r.s.ordenes {
		if o.RecetaID == recetaID {
			n++
		}
	}
	return n, nil
}

// conReceta mimics Preload("Receta"). Caller holds the lock.
func (s *Store) conReceta(o model.OrdenProduccion) model.OrdenProduccion {
	if rec, ok := s.recetas[o.RecetaID]; ok {
		c := clonarReceta(rec)
		o.Receta = &c
	}
	return o
}
