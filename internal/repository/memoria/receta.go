package memoria

import (
	"context"
	"sort"
	"strings"

	"abbafoods/internal/model"
	"abbafoods/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type recetaRepo struct{ s *Store }

var _ repository.RecetaRepository = (*recetaRepo)(nil)

func NewRecetaRepository(s *Store) repository.RecetaRepository { return &recetaRepo{s: s} }

func (r *recetaRepo) Create(_ context.Context, rec *model.Receta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	asignarID(&rec.ID)
	now := r.s.now()
	rec.CreatedAt, rec.UpdatedAt = now, now
	for i := range rec.Ingredientes {
		asignarID(&rec.Ingredientes[i].ID)
		rec.Ingredientes[i].RecetaID = rec.ID
	}
	r.s.recetas[rec.ID] = clonarReceta(*rec)
	return nil
}

func (r *recetaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Receta, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.recetas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := r.s.hidratarReceta(rec)
	return &out, nil
}

func (r *recetaRepo) FindByNombre(_ context.Context, nombre string) (*model.Receta, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.recetas {
		if strings.EqualFold(rec.Nombre, nombre) {
			out := r.s.hidratarReceta(rec)
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *recetaRepo) List(_ context.Context) ([]model.Receta, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]model.Receta, 0, len(r.s.recetas))
	for _, rec := range r.s.recetas {
		list = append(list, r.s.hidratarReceta(rec))
	}
	sort.Slice(list, func(i, j int) bool {
		return strings.ToLower(list[i].Nombre) < strings.ToLower(list[j].Nombre)
	})
	return list, nil
}

func (r *recetaRepo) Update(_ context.Context, rec *model.Receta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.recetas[rec.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rec.CreatedAt = prev.CreatedAt
	rec.UpdatedAt = r.s.now()
	for i := range rec.Ingredientes {
		asignarID(&rec.Ingredientes[i].ID)
		rec.Ingredientes[i].RecetaID = rec.ID
	}
	r.s.recetas[rec.ID] = clonarReceta(*rec)
	return nil
}

func (r *recetaRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.recetas[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.recetas, id)
	return nil
}

// clonarReceta copies the ingredient slice so callers cannot mutate stored rows.
func clonarReceta(rec model.Receta) model.Receta {
	ings := make([]model.IngredienteReceta, len(rec.Ingredientes))
	copy(ings, rec.Ingredientes)
	for i := range ings {
		ings[i].Presentacion = nil
	}
	rec.Ingredientes = ings
	return rec
}

// hidratarReceta orders ingredients by position and attaches presentations.
// Caller holds the lock.
func (s *Store) hidratarReceta(rec model.Receta) model.Receta {
	out := clonarReceta(rec)
	sort.SliceStable(out.Ingredientes, func(i, j int) bool {
		return out.Ingredientes[i].Posicion < out.Ingredientes[j].Posicion
	})
	for i, ing := range out.Ingredientes {
		if ing.PresentacionID == nil {
			continue
		}
		if p, ok := s.presentaciones[*ing.PresentacionID]; ok {
			out.Ingredientes[i].Presentacion = &p
		}
	}
	return out
}
