package service

import (
	"context"
	"testing"
	"time"

	"abbafoods/internal/dto"
	"abbafoods/internal/model"
	"abbafoods/internal/repository"
	"abbafoods/internal/repository/memoria"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ahora is the fixed clock used by every service test.
var ahora = time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

type entorno struct {
	store    *memoria.Store
	materias repository.MateriaPrimaRepository
	recetas  repository.RecetaRepository
	ordenes  repository.OrdenProduccionRepository
	pedidos  repository.PedidoRepository
}

func nuevoEntorno(t *testing.T) entorno {
	t.Helper()
	s := memoria.NewDemoStore(ahora)
	return entorno{
		store:    s,
		materias: memoria.NewMateriaPrimaRepository(s),
		recetas:  memoria.NewRecetaRepository(s),
		ordenes:  memoria.NewOrdenProduccionRepository(s),
		pedidos:  memoria.NewPedidoRepository(s),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (e entorno) materia(t *testing.T, nombre string) model.MateriaPrima {
	t.Helper()
	list, err := e.materias.List(context.Background())
	require.NoError(t, err)
	for _, m := range list {
		if m.Nombre == nombre {
			return m
		}
	}
	t.Fatalf("materia %q no encontrada", nombre)
	return model.MateriaPrima{}
}

func (e entorno) receta(t *testing.T, nombre string) *model.Receta {
	t.Helper()
	r, err := e.recetas.FindByNombre(context.Background(), nombre)
	require.NoError(t, err)
	return r
}

func (e entorno) setStock(t *testing.T, nombre, cantidad string) {
	t.Helper()
	m := e.materia(t, nombre)
	m.Cantidad = dec(cantidad)
	require.NoError(t, e.materias.Update(context.Background(), &m))
}

func ptr[T any](v T) *T { return &v }

func idStr(id uuid.UUID) *string { s := id.String(); return &s }

func ingrediente(materialID uuid.UUID, nombre, porLitro, unidad string) dto.IngredienteRequest {
	return dto.IngredienteRequest{
		MaterialID:       idStr(materialID),
		MaterialNombre:   nombre,
		CantidadPorLitro: dec(porLitro),
		Unidad:           unidad,
	}
}
