// Package demo holds the placeholder catalog shown when no database is
// configured. cmd/seed writes the same rows into PostgreSQL.
package demo

import (
	"time"

	"abbafoods/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Catalogo is a consistent set of rows: recipes point at the materials and
// presentations in the same value, orders point at the recipes.
type Catalogo struct {
	Materias       []model.MateriaPrima
	Presentaciones []model.PresentacionMaterial
	Recetas        []model.Receta
	Ordenes        []model.OrdenProduccion
	Pedidos        []model.Pedido
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fecha(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func str(s string) *string { return &s }

func dia(t time.Time) time.Time {
	y, m, dd := t.UTC().Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

// Nuevo builds the placeholder catalog. Production orders and the sample
// order are dated relative to now so the dashboard has recent data.
func Nuevo(now time.Time) Catalogo {
	lecheCruda := uuid.New()
	cuajo := uuid.New()
	cultivo := uuid.New()
	envase := uuid.New()
	lechePolvo := uuid.New()

	materias := []model.MateriaPrima{
		{ID: lecheCruda, Nombre: "Leche Cruda", Proveedor: str("Hacienda La Gloria"), Cantidad: d("8"), Unidad: "L",
			FechaVencimiento: fecha("2024-10-25"), Tipo: model.TipoLeche, StockMinimo: d("10")},
		{ID: cuajo, Nombre: "Cuajo Líquido", Proveedor: str("BioDairy S.A."), Cantidad: d("2.5"), Unidad: "L",
			FechaVencimiento: fecha("2025-01-15"), Tipo: model.TipoInsumo, StockMinimo: d("1")},
		{ID: cultivo, Nombre: "Cultivo Láctico", Proveedor: str("BioDairy S.A."), Cantidad: d("3"), Unidad: "Sobres",
			FechaVencimiento: fecha("2025-02-20"), Tipo: model.TipoInsumo, StockMinimo: d("5")},
		{ID: envase, Nombre: "Envase Yogurt 1L", Proveedor: str("PackMaster"), Cantidad: d("500"), Unidad: "Uds",
			Tipo: model.TipoEmpaque, StockMinimo: d("100")},
		{ID: lechePolvo, Nombre: "Leche en Polvo", Proveedor: str("DairyGold"), Cantidad: d("5000"), Unidad: "gr",
			FechaVencimiento: fecha("2025-06-30"), Tipo: model.TipoInsumo, StockMinimo: d("1000")},
	}

	cajaCultivo := uuid.New()
	sacoPolvo := uuid.New()
	presentaciones := []model.PresentacionMaterial{
		{ID: cajaCultivo, MaterialID: cultivo, Descripcion: "Caja x 50 sobres", TamanoPaquete: d("50"), Unidad: "Sobres", Costo: d("125")},
		{ID: sacoPolvo, MaterialID: lechePolvo, Descripcion: "Saco 25 kg", TamanoPaquete: d("25000"), Unidad: "gr", Costo: d("180")},
	}

	griego := uuid.New()
	cafe := uuid.New()
	recetas := []model.Receta{
		{
			ID:     griego,
			Nombre: "Yogur Griego Base",
			Notas:  "Incubación a 42°C por 8 horas. Desuerado lento.",
			Ingredientes: []model.IngredienteReceta{
				{MaterialID: &cultivo, MaterialNombre: "Cultivo Láctico", CantidadPorLitro: d("0.05"), Unidad: "Sobres", PresentacionID: &cajaCultivo, Posicion: 0},
				{MaterialID: &lechePolvo, MaterialNombre: "Leche en Polvo (Refuerzo)", CantidadPorLitro: d("30"), Unidad: "gr", PresentacionID: &sacoPolvo, Posicion: 1},
				{MaterialNombre: "Vainilla Natural", CantidadPorLitro: d("2"), Unidad: "ml", Posicion: 2},
			},
		},
		{
			ID:     cafe,
			Nombre: "Yogur Café Gourmet",
			Notas:  "Añadir el café después del proceso de fermentación.",
			Ingredientes: []model.IngredienteReceta{
				{MaterialID: &cultivo, MaterialNombre: "Cultivo Láctico", CantidadPorLitro: d("0.05"), Unidad: "Sobres", PresentacionID: &cajaCultivo, Posicion: 0},
				{MaterialNombre: "Extracto Café Abba", CantidadPorLitro: d("15"), Unidad: "ml", Posicion: 1},
				{MaterialNombre: "Azúcar Orgánica", CantidadPorLitro: d("40"), Unidad: "gr", Posicion: 2},
			},
		},
	}
	for i := range recetas {
		for j := range recetas[i].Ingredientes {
			recetas[i].Ingredientes[j].ID = uuid.New()
			recetas[i].Ingredientes[j].RecetaID = recetas[i].ID
		}
	}

	hoy := dia(now)
	ayer := hoy.AddDate(0, 0, -1)
	ordenes := []model.OrdenProduccion{
		{ID: uuid.New(), RecetaID: griego, Fecha: ayer, Lote: "OP-" + ayer.Format("20060102") + "0800",
			Estado: model.EstadoTerminado, VolumenLeche: d("50"), CantidadProducida: d("45"), Merma: d("2")},
		{ID: uuid.New(), RecetaID: cafe, Fecha: hoy, Lote: "OP-" + hoy.Format("20060102") + "0730",
			Estado: model.EstadoEnProceso, VolumenLeche: d("30")},
	}

	pedidoID := uuid.New()
	pedidos := []model.Pedido{
		{
			ID:            pedidoID,
			NumeroPedido:  "PED-" + hoy.Format("20060102") + "-101",
			ClienteNombre: "Cliente Ejemplo",
			FechaPedido:   hoy,
			Estado:        model.EstadoPendiente,
			EstadoPago:    model.PagoPendiente,
			EstadoEntrega: model.EntregaPendiente,
			Items: []model.PedidoItem{
				{ID: uuid.New(), PedidoID: pedidoID, RecetaID: griego, Cantidad: d("10"), Unidad: "L"},
			},
		},
	}

	return Catalogo{
		Materias:       materias,
		Presentaciones: presentaciones,
		Recetas:        recetas,
		Ordenes:        ordenes,
		Pedidos:        pedidos,
	}
}
