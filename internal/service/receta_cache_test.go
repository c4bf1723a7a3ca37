//go:build integration

package service

import (
	"context"
	"testing"

	"abbafoods/internal/dto"
	"abbafoods/internal/infra"
	"abbafoods/internal/metrics"
	"abbafoods/internal/model"
	"abbafoods/internal/repository"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func redisDePrueba(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()
	c, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })
	url, err := c.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

// listaConEscritura runs escritura once, right after the database read of
// List and before the caller gets the result.
type listaConEscritura struct {
	repository.RecetaRepository
	escritura func()
}

func (r *listaConEscritura) List(ctx context.Context) ([]model.Receta, error) {
	list, err := r.RecetaRepository.List(ctx)
	if f := r.escritura; f != nil {
		r.escritura = nil
		f()
	}
	return list, err
}

func TestReceta_CacheNoGuardaListaVieja(t *testing.T) {
	e := nuevoEntorno(t)
	rdb := redisDePrueba(t)
	mreg := metrics.NewRegistry()
	ctx := context.Background()

	repo := &listaConEscritura{RecetaRepository: e.recetas}
	svc := NewRecetaService(repo, e.materias, e.ordenes, rdb, 0, mreg)
	escritor := NewRecetaService(e.recetas, e.materias, e.ordenes, rdb, 0, mreg)

	cultivo := e.materia(t, "Cultivo Láctico")
	repo.escritura = func() {
		_, err := escritor.Crear(ctx, dto.CrearRecetaRequest{
			Nombre:       "Kéfir Natural",
			Ingredientes: []dto.IngredienteRequest{ingrediente(cultivo.ID, "Cultivo Láctico", "0.02", "Sobres")},
		})
		require.NoError(t, err)
	}

	vieja, err := svc.Listar(ctx)
	require.NoError(t, err)
	assert.Len(t, vieja, 2, "read before the write")

	nueva, err := svc.Listar(ctx)
	require.NoError(t, err)
	assert.Len(t, nueva, 3, "the list read before the write is not served")
	assert.Equal(t, 2.0, testutil.ToFloat64(mreg.RecetasCache.WithLabelValues("miss")))

	_, err = svc.Listar(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(mreg.RecetasCache.WithLabelValues("hit")))
}
