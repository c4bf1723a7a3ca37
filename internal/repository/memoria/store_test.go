package memoria

import (
	"context"
	"testing"
	"time"

	"abbafoods/internal/model"
	"abbafoods/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var hoy = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestDemoStore_Catalogo(t *testing.T) {
	set := NewSet(NewDemoStore(hoy))
	ctx := context.Background()

	materias, err := set.Materias.List(ctx)
	require.NoError(t, err)
	assert.Len(t, materias, 5)

	griego, err := set.Recetas.FindByNombre(ctx, "YOGUR GRIEGO BASE")
	require.NoError(t, err)
	require.Len(t, griego.Ingredientes, 3)
	assert.Equal(t, "Cultivo Láctico", griego.Ingredientes[0].MaterialNombre)
	require.NotNil(t, griego.Ingredientes[0].Presentacion)
	assert.Equal(t, "Caja x 50 sobres", griego.Ingredientes[0].Presentacion.Descripcion)

	n, err := set.Ordenes.CountByReceta(ctx, griego.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRecetas_CopiasIndependientes(t *testing.T) {
	set := NewSet(NewDemoStore(hoy))
	ctx := context.Background()

	r1, err := set.Recetas.FindByNombre(ctx, "Yogur Café Gourmet")
	require.NoError(t, err)
	r1.Ingredientes[0].CantidadPorLitro = decimal.NewFromInt(99)

	r2, err := set.Recetas.FindByID(ctx, r1.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.05").Equal(r2.Ingredientes[0].CantidadPorLitro))
}

func TestOrdenes_FiltroYOrden(t *testing.T) {
	set := NewSet(NewDemoStore(hoy))
	ctx := context.Background()

	todas, err := set.Ordenes.List(ctx, repository.OrdenProduccionFilter{})
	require.NoError(t, err)
	require.Len(t, todas, 2)
	assert.True(t, todas[0].Fecha.After(todas[1].Fecha), "newest first")

	terminadas, err := set.Ordenes.List(ctx, repository.OrdenProduccionFilter{Estado: model.EstadoTerminado})
	require.NoError(t, err)
	assert.Len(t, terminadas, 1)

	desdeHoy, err := set.Ordenes.List(ctx, repository.OrdenProduccionFilter{Desde: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Len(t, desdeHoy, 1)
}

func TestPedidos_Errores(t *testing.T) {
	set := NewSet(NewDemoStore(hoy))
	ctx := context.Background()

	list, err := set.Pedidos.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	dup := &model.Pedido{NumeroPedido: list[0].NumeroPedido, ClienteNombre: "Otro"}
	assert.ErrorIs(t, set.Pedidos.Create(ctx, dup), gorm.ErrDuplicatedKey)

	huerfano := &model.PedidoItem{PedidoID: uuid.New(), RecetaID: uuid.New(), Cantidad: decimal.NewFromInt(1)}
	assert.ErrorIs(t, set.Pedidos.CreateItem(ctx, huerfano), gorm.ErrForeignKeyViolated)

	assert.ErrorIs(t, set.Pedidos.UpdateEstadoPago(ctx, uuid.New(), model.PagoPagado), gorm.ErrRecordNotFound)

	require.NoError(t, set.Pedidos.Delete(ctx, list[0].ID))
	_, err = set.Pedidos.FindByID(ctx, list[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
