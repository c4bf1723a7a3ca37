package service

import (
	"context"
	"testing"

	"abbafoods/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEtiquetaVenta(t *testing.T) {
	tests := []struct {
		pago, entrega string
		want          string
	}{
		{model.PagoPagado, model.EntregaEntregado, "DESPACHADO Y CANCELADO"},
		{model.PagoPendiente, model.EntregaEntregado, "DESPACHADO POR CANCELAR"},
		{model.PagoPagado, model.EntregaPendiente, "PREPAGADO"},
		{model.PagoPendiente, model.EntregaPendiente, "PENDIENTE"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			p := model.Pedido{EstadoPago: tt.pago, EstadoEntrega: tt.entrega}
			assert.Equal(t, tt.want, p.EtiquetaVenta())
		})
	}
}

func pedidoDemo(t *testing.T, e entorno) model.Pedido {
	t.Helper()
	list, err := e.pedidos.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	return list[0]
}

func TestVenta_ListarYFiltros(t *testing.T) {
	e := nuevoEntorno(t)
	svc := NewVentaService(e.pedidos, e.recetas)
	ctx := context.Background()
	p := pedidoDemo(t, e)

	todas, err := svc.Listar(ctx, "")
	require.NoError(t, err)
	require.Len(t, todas, 1)
	assert.Equal(t, "Yogur Griego Base (10 L)", todas[0].Productos)
	assert.Equal(t, "PENDIENTE", todas[0].Etiqueta)

	pre, err := svc.Listar(ctx, FiltroPreventas)
	require.NoError(t, err)
	assert.Len(t, pre, 1)
	hechas, err := svc.Listar(ctx, FiltroRealizadas)
	require.NoError(t, err)
	assert.Empty(t, hechas)

	v, err := svc.ActualizarEstadoEntrega(ctx, p.ID, model.EntregaEntregado)
	require.NoError(t, err)
	assert.Equal(t, "DESPACHADO POR CANCELAR", v.Etiqueta)

	pre, err = svc.Listar(ctx, FiltroPreventas)
	require.NoError(t, err)
	assert.Empty(t, pre)
	hechas, err = svc.Listar(ctx, FiltroRealizadas)
	require.NoError(t, err)
	assert.Len(t, hechas, 1)

	_, err = svc.Listar(ctx, "anuladas")
	assert.ErrorIs(t, err, ErrInvalido)
}

func TestVenta_FlagsIndependientes(t *testing.T) {
	e := nuevoEntorno(t)
	svc := NewVentaService(e.pedidos, e.recetas)
	ctx := context.Background()
	p := pedidoDemo(t, e)

	v, err := svc.ActualizarEstadoPago(ctx, p.ID, model.PagoPagado)
	require.NoError(t, err)
	assert.Equal(t, model.PagoPagado, v.EstadoPago)
	assert.Equal(t, model.EntregaPendiente, v.EstadoEntrega)
	assert.Equal(t, "PREPAGADO", v.Etiqueta)

	v, err = svc.ActualizarEstadoEntrega(ctx, p.ID, model.EntregaEntregado)
	require.NoError(t, err)
	assert.Equal(t, "DESPACHADO Y CANCELADO", v.Etiqueta)

	v, err = svc.ActualizarEstadoPago(ctx, p.ID, model.PagoPendiente)
	require.NoError(t, err)
	assert.Equal(t, model.EntregaEntregado, v.EstadoEntrega)
	assert.Equal(t, "DESPACHADO POR CANCELAR", v.Etiqueta)
}

func TestVenta_ErroresEstado(t *testing.T) {
	e := nuevoEntorno(t)
	svc := NewVentaService(e.pedidos, e.recetas)
	ctx := context.Background()
	p := pedidoDemo(t, e)

	_, err := svc.ActualizarEstadoPago(ctx, p.ID, "parcial")
	assert.ErrorIs(t, err, ErrInvalido)
	_, err = svc.ActualizarEstadoEntrega(ctx, p.ID, "en_camino")
	assert.ErrorIs(t, err, ErrInvalido)

	_, err = svc.ActualizarEstadoPago(ctx, uuid.New(), model.PagoPagado)
	assert.ErrorIs(t, err, ErrNoEncontrado)

	// an invalid value leaves the row untouched
	got, err := e.pedidos.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PagoPendiente, got.EstadoPago)
}

func TestResumenVentaSinItems(t *testing.T) {
	assert.Equal(t, "Sin productos", resumenVenta(nil, nil))
}
