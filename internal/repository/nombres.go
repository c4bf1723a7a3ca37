package repository

import (
	"context"

	"github.com/google/uuid"
)

// NombresRecetas maps every recipe ID to its name.
func NombresRecetas(ctx context.Context, repo RecetaRepository) (map[uuid.UUID]string, error) {
	list, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]string, len(list))
	for _, r := range list {
		out[r.ID] = r.Nombre
	}
	return out, nil
}
