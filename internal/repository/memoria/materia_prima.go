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

type materiaPrimaRepo struct{ s *Store }

var _ repository.MateriaPrimaRepository = (*materiaPrimaRepo)(nil)

func NewMateriaPrimaRepository(s *Store) repository.MateriaPrimaRepository {
	return &materiaPrimaRepo{s: s}
}

func (r *materiaPrimaRepo) Create(_ context.Context, m *model.MateriaPrima) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	asignarID(&m.ID)
	now := r.s.now()
	m.CreatedAt, m.UpdatedAt = now, now
	r.s.materias[m.ID] = *m
	return nil
}

func (r *materiaPrimaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MateriaPrima, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.materias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r *materiaPrimaRepo) List(_ context.Context) ([]model.MateriaPrima, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]model.MateriaPrima, 0, len(r.s.materias))
	for _, m := range r.s.materias {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool {
		return strings.ToLower(list[i].Nombre) < strings.ToLower(list[j].Nombre)
	})
	return list, nil
}

func (r *materiaPrimaRepo) Update(_ context.Context, m *model.MateriaPrima) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materias[m.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.UpdatedAt = r.s.now()
	r.s.materias[m.ID] = *m
	return nil
}

func (r *materiaPrimaRepo) CreatePresentacion(_ context.Context, p *model.PresentacionMaterial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materias[p.MaterialID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	asignarID(&p.ID)
	p.CreatedAt = r.s.now()
	r.s.presentaciones[p.ID] = *p
	return nil
}

func (r *materiaPrimaRepo) ListPresentaciones(_ context.Context, materialID uuid.UUID) ([]model.PresentacionMaterial, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := []model.PresentacionMaterial{}
	for _, p := range r.s.presentaciones {
		if p.MaterialID == materialID {
			list = append(list, p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Descripcion < list[j].Descripcion })
	return list, nil
}
