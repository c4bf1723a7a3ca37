package infra

import (
	"bytes"
	"os"
	"testing"
	"time"

	"abbafoods/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pedidoDePrueba() *model.Pedido {
	recetaID := uuid.New()
	entrega := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	return &model.Pedido{
		ID:            uuid.New(),
		NumeroPedido:  "PED-20250301-345",
		ClienteNombre: "Almacén Doña Rosa",
		FechaPedido:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		FechaEntrega:  &entrega,
		Estado:        model.EstadoPendiente,
		EstadoPago:    model.PagoPagado,
		EstadoEntrega: model.EntregaPendiente,
		Items: []model.PedidoItem{
			{RecetaID: recetaID, Cantidad: decimal.NewFromInt(10), Unidad: "L"},
			{RecetaID: uuid.New(), Cantidad: decimal.NewFromInt(4), Unidad: "L"},
		},
	}
}

func TestRenderPedidoPDF(t *testing.T) {
	p := pedidoDePrueba()
	var buf bytes.Buffer
	err := RenderPedidoPDF(&buf, p, NombresReceta{p.Items[0].RecetaID: "Yogur Griego Base"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestGeneratePedidoPDF(t *testing.T) {
	dir := t.TempDir()
	path, err := GeneratePedidoPDF(pedidoDePrueba(), nil, dir)
	require.NoError(t, err)
	assert.Contains(t, path, "pedido_PED-20250301-345.pdf")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestStoredPedidoPDF(t *testing.T) {
	dir := t.TempDir()
	p := pedidoDePrueba()
	p.UpdatedAt = time.Date(2025, 3, 1, 10, 30, 0, 123456000, time.UTC)

	_, ok := StoredPedidoPDF(dir, p)
	assert.False(t, ok, "nothing rendered yet")

	path, err := GeneratePedidoPDF(p, nil, dir)
	require.NoError(t, err)
	want, err := os.ReadFile(path)
	require.NoError(t, err)

	got, ok := StoredPedidoPDF(dir, p)
	require.True(t, ok)
	assert.Equal(t, want, got)

	// a later write to the order leaves the file behind
	p.UpdatedAt = p.UpdatedAt.Add(time.Second)
	_, ok = StoredPedidoPDF(dir, p)
	assert.False(t, ok)

	_, ok = StoredPedidoPDF("", p)
	assert.False(t, ok)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}
