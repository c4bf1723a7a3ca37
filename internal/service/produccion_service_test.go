package service

import (
	"context"
	"testing"
	"time"

	"abbafoods/internal/dto"
	"abbafoods/internal/metrics"
	"abbafoods/internal/model"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoProduccionService(e entorno, mreg *metrics.Registry) *produccionService {
	svc := NewProduccionService(e.recetas, e.materias, e.ordenes, mreg).(*produccionService)
	svc.now = func() time.Time { return ahora }
	return svc
}

// recetaSoloCultivo creates a recipe whose only ingredient is linked to stock.
func recetaSoloCultivo(t *testing.T, e entorno) *model.Receta {
	t.Helper()
	cultivo := e.materia(t, "Cultivo Láctico")
	r := &model.Receta{Nombre: "Yogur Simple", Ingredientes: []model.IngredienteReceta{
		{MaterialID: &cultivo.ID, MaterialNombre: "Cultivo Láctico", CantidadPorLitro: dec("0.05"), Unidad: "Sobres"},
	}}
	require.NoError(t, e.recetas.Create(context.Background(), r))
	return r
}

func TestProduccion_Calcular(t *testing.T) {
	e := nuevoEntorno(t)
	svc := nuevoProduccionService(e, nil)
	griego := e.receta(t, "Yogur Griego Base")

	res, err := svc.Calcular(context.Background(), dto.CalcularRequest{RecetaID: griego.ID.String(), VolumenLeche: dec("50")})
	require.NoError(t, err)
	require.Len(t, res.Requerimientos, 3)

	cultivo := res.Requerimientos[0]
	assert.True(t, dec("2.5").Equal(cultivo.Necesario))
	assert.True(t, dec("3").Equal(cultivo.Disponible))
	assert.False(t, cultivo.Insuficiente)

	polvo := res.Requerimientos[1]
	assert.True(t, dec("1500").Equal(polvo.Necesario))
	assert.False(t, polvo.Insuficiente)

	vainilla := res.Requerimientos[2]
	assert.True(t, vainilla.Disponible.IsZero())
	assert.True(t, vainilla.Insuficiente)

	assert.True(t, dec("8").Equal(res.LecheDisponible))
	assert.True(t, res.LecheInsuficiente)
	assert.False(t, res.PuedeLanzar)
}

func TestProduccion_CalcularVolumenCero(t *testing.T) {
	e := nuevoEntorno(t)
	svc := nuevoProduccionService(e, nil)
	griego := e.receta(t, "Yogur Griego Base")

	res, err := svc.Calcular(context.Background(), dto.CalcularRequest{RecetaID: griego.ID.String()})
	require.NoError(t, err)
	assert.Empty(t, res.Requerimientos)
	assert.False(t, res.PuedeLanzar)

	_, err = svc.Lanzar(context.Background(), dto.CalcularRequest{RecetaID: griego.ID.String()})
	assert.ErrorIs(t, err, ErrInvalido)
}

func TestProduccion_CalcularRecetaInexistente(t *testing.T) {
	e := nuevoEntorno(t)
	svc := nuevoProduccionService(e, nil)

	_, err := svc.Calcular(context.Background(), dto.CalcularRequest{RecetaID: uuid.NewString(), VolumenLeche: dec("10")})
	assert.ErrorIs(t, err, ErrNoEncontrado)
	_, err = svc.Calcular(context.Background(), dto.CalcularRequest{RecetaID: "xx", VolumenLeche: dec("10")})
	assert.ErrorIs(t, err, ErrInvalido)
}

func TestProduccion_LanzarRechazaFaltantes(t *testing.T) {
	e := nuevoEntorno(t)
	svc := nuevoProduccionService(e, nil)
	r := recetaSoloCultivo(t, e)

	// leche: 8 L for 50 L requested
	_, err := svc.Lanzar(context.Background(), dto.CalcularRequest{RecetaID: r.ID.String(), VolumenLeche: dec("50")})
	require.ErrorIs(t, err, ErrConflicto)
	assert.Contains(t, err.Error(), "leche")

	// leche ok, cultivo short: 2 sobres for 2.5
	e.setStock(t, "Leche Cruda", "150")
	e.setStock(t, "Cultivo Láctico", "2")
	_, err = svc.Lanzar(context.Background(), dto.CalcularRequest{RecetaID: r.ID.String(), VolumenLeche: dec("50")})
	require.ErrorIs(t, err, ErrConflicto)
	assert.Contains(t, err.Error(), "Cultivo Láctico")
	assert.NotContains(t, err.Error(), "leche")
}

func TestProduccion_LanzarNoDescuentaStock(t *testing.T) {
	e := nuevoEntorno(t)
	mreg := metrics.NewRegistry()
	svc := nuevoProduccionService(e, mreg)
	r := recetaSoloCultivo(t, e)
	e.setStock(t, "Leche Cruda", "150")

	orden, err := svc.Lanzar(context.Background(), dto.CalcularRequest{RecetaID: r.ID.String(), VolumenLeche: dec("50")})
	require.NoError(t, err)
	assert.Equal(t, "OP-202503011030", orden.Lote)
	assert.Equal(t, "2025-03-01", orden.Fecha)
	assert.Equal(t, model.EstadoEnProceso, orden.Estado)
	assert.Equal(t, "Yogur Simple", orden.RecetaNombre)
	assert.True(t, dec("50").Equal(orden.VolumenLeche))
	assert.True(t, orden.CantidadProducida.IsZero())
	assert.Equal(t, 1.0, testutil.ToFloat64(mreg.OrdenesLanzadas))

	assert.True(t, dec("150").Equal(e.materia(t, "Leche Cruda").Cantidad))
	assert.True(t, dec("3").Equal(e.materia(t, "Cultivo Láctico").Cantidad))
}

func TestNuevoLoteUsaUTC(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	assert.Equal(t, "OP-202503011030", NuevoLote(time.Date(2025, 3, 1, 7, 30, 0, 0, loc)))
}

func TestProduccion_ListarYTerminar(t *testing.T) {
	e := nuevoEntorno(t)
	svc := nuevoProduccionService(e, nil)
	ctx := context.Background()

	enProceso, err := svc.Listar(ctx, dto.OrdenProduccionFilter{Estado: model.EstadoEnProceso})
	require.NoError(t, err)
	require.Len(t, enProceso, 1)
	assert.Equal(t, "Yogur Café Gourmet", enProceso[0].RecetaNombre)

	todas, err := svc.Listar(ctx, dto.OrdenProduccionFilter{})
	require.NoError(t, err)
	require.Len(t, todas, 2)
	assert.Equal(t, enProceso[0].ID, todas[0].ID, "newest first")

	fin, err := svc.Terminar(ctx, enProceso[0].ID, dto.TerminarOrdenRequest{
		CantidadProducida: dec("28"), Merma: dec("1.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.EstadoTerminado, fin.Estado)
	assert.True(t, dec("28").Equal(fin.CantidadProducida))

	_, err = svc.Terminar(ctx, enProceso[0].ID, dto.TerminarOrdenRequest{})
	assert.ErrorIs(t, err, ErrConflicto)

	_, err = svc.Terminar(ctx, uuid.New(), dto.TerminarOrdenRequest{})
	assert.ErrorIs(t, err, ErrNoEncontrado)

	_, err = svc.Obtener(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNoEncontrado)

	_, err = svc.Terminar(ctx, todas[1].ID, dto.TerminarOrdenRequest{Merma: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrConflicto, "demo order from yesterday is already finished")
}
