package service

import (
	"context"
	"testing"

	"abbafoods/internal/dto"
	"abbafoods/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoRecetaService(e entorno) RecetaService {
	return NewRecetaService(e.recetas, e.materias, e.ordenes, nil, 0, nil)
}

func TestReceta_ListarConCostos(t *testing.T) {
	e := nuevoEntorno(t)
	svc := nuevoRecetaService(e)

	list, err := svc.Listar(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Yogur Café Gourmet", list[0].Nombre)
	assert.Equal(t, "Yogur Griego Base", list[1].Nombre)

	griego := list[1]
	assert.True(t, decimal.NewFromInt(1).Equal(griego.BaseLeche))
	require.Len(t, griego.Ingredientes, 3)
	assert.Equal(t, "Cultivo Láctico", griego.Ingredientes[0].MaterialNombre)
	assert.Equal(t, "Vainilla Natural", griego.Ingredientes[2].MaterialNombre)

	// caja x 50 sobres a 125 -> 2.5 por sobre; 0.05 sobres/L -> 0.125 por litro
	require.NotNil(t, griego.Ingredientes[0].CostoPorLitro)
	assert.True(t, dec("0.125").Equal(*griego.Ingredientes[0].CostoPorLitro))
	// saco 25000 gr a 180 -> 0.0072 por gr; 30 gr/L -> 0.216 por litro
	require.NotNil(t, griego.Ingredientes[1].CostoPorLitro)
	assert.True(t, dec("0.216").Equal(*griego.Ingredientes[1].CostoPorLitro))
	assert.Nil(t, griego.Ingredientes[2].CostoPorLitro)
	assert.True(t, dec("0.341").Equal(griego.CostoPorLitro))
}

func TestReceta_CrearValidaciones(t *testing.T) {
	e := nuevoEntorno(t)
	svc := nuevoRecetaService(e)
	ctx := context.Background()
	cultivo := e.materia(t, "Cultivo Láctico")

	_, err := svc.Crear(ctx, dto.CrearRecetaRequest{
		Nombre:       "yogur griego base",
		Ingredientes: []dto.IngredienteRequest{ingrediente(cultivo.ID, "Cultivo Láctico", "0.05", "Sobres")},
	})
	assert.ErrorIs(t, err, ErrConflicto)

	_, err = svc.Crear(ctx, dto.CrearRecetaRequest{
		Nombre:       "Yogur Frutilla",
		Ingredientes: []dto.IngredienteRequest{ingrediente(uuid.New(), "Pulpa Frutilla", "80", "gr")},
	})
	assert.ErrorIs(t, err, ErrInvalido)

	otra := e.materia(t, "Cuajo Líquido")
	ing := ingrediente(cultivo.ID, "Cultivo Láctico", "0.05", "Sobres")
	pres, err := e.materias.ListPresentaciones(ctx, cultivo.ID)
	require.NoError(t, err)
	require.NotEmpty(t, pres)
	ing.MaterialID = idStr(otra.ID)
	ing.PresentacionID = idStr(pres[0].ID)
	_, err = svc.Crear(ctx, dto.CrearRecetaRequest{Nombre: "Yogur Frutilla", Ingredientes: []dto.IngredienteRequest{ing}})
	assert.ErrorIs(t, err, ErrInvalido)
}

func TestReceta_CrearYActualizar(t *testing.T) {
	e := nuevoEntorno(t)
	svc := nuevoRecetaService(e)
	ctx := context.Background()
	cultivo := e.materia(t, "Cultivo Láctico")
	polvo := e.materia(t, "Leche en Polvo")

	creada, err := svc.Crear(ctx, dto.CrearRecetaRequest{
		Nombre: "Yogur Natural",
		Notas:  "Sin azúcar.",
		Ingredientes: []dto.IngredienteRequest{
			ingrediente(cultivo.ID, "Cultivo Láctico", "0.04", "Sobres"),
			{MaterialNombre: "Vainilla Natural", CantidadPorLitro: dec("1"), Unidad: "ml"},
		},
	})
	require.NoError(t, err)
	require.Len(t, creada.Ingredientes, 2)
	assert.Nil(t, creada.Ingredientes[1].MaterialID)

	act, err := svc.Actualizar(ctx, creada.ID, dto.ActualizarRecetaRequest{
		Nombre: "Yogur Natural",
		Notas:  "Con refuerzo.",
		Ingredientes: []dto.IngredienteRequest{
			ingrediente(polvo.ID, "Leche en Polvo", "25", "gr"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Con refuerzo.", act.Notas)
	require.Len(t, act.Ingredientes, 1)
	assert.Equal(t, "Leche en Polvo", act.Ingredientes[0].MaterialNombre)

	_, err = svc.Actualizar(ctx, creada.ID, dto.ActualizarRecetaRequest{
		Nombre:       "Yogur Café Gourmet",
		Ingredientes: []dto.IngredienteRequest{ingrediente(polvo.ID, "Leche en Polvo", "25", "gr")},
	})
	assert.ErrorIs(t, err, ErrConflicto)
}

func TestReceta_Eliminar(t *testing.T) {
	e := nuevoEntorno(t)
	svc := nuevoRecetaService(e)
	ctx := context.Background()

	// both demo recipes have production orders
	griego := e.receta(t, "Yogur Griego Base")
	assert.ErrorIs(t, svc.Eliminar(ctx, griego.ID), ErrConflicto)

	libre := &model.Receta{Nombre: "Kéfir", Ingredientes: []model.IngredienteReceta{
		{MaterialNombre: "Nódulos", CantidadPorLitro: dec("10"), Unidad: "gr"},
	}}
	require.NoError(t, e.recetas.Create(ctx, libre))
	require.NoError(t, svc.Eliminar(ctx, libre.ID))

	_, err := svc.Obtener(ctx, libre.ID)
	assert.ErrorIs(t, err, ErrNoEncontrado)
	assert.ErrorIs(t, svc.Eliminar(ctx, libre.ID), ErrNoEncontrado)
}
