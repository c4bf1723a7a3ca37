package service

import (
	"context"
	"sort"
	"time"

	"abbafoods/internal/dto"
	"abbafoods/internal/model"
	"abbafoods/internal/repository"
	"abbafoods/internal/requerimiento"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var diasSemana = [...]string{"Dom", "Lun", "Mar", "Mie", "Jue", "Vie", "Sab"}

// DashboardService aggregates the numbers shown on the home screen.
type DashboardService interface {
	Resumen(ctx context.Context) (dto.DashboardResponse, error)
}

type dashboardService struct {
	materias repository.MateriaPrimaRepository
	ordenes  repository.OrdenProduccionRepository
	pedidos  repository.PedidoRepository
	recetas  repository.RecetaRepository
	now      func() time.Time
}

func NewDashboardService(
	materias repository.MateriaPrimaRepository,
	ordenes repository.OrdenProduccionRepository,
	pedidos repository.PedidoRepository,
	recetas repository.RecetaRepository,
) DashboardService {
	return &dashboardService{materias: materias, ordenes: ordenes, pedidos: pedidos, recetas: recetas, now: time.Now}
}

func (s *dashboardService) Resumen(ctx context.Context) (dto.DashboardResponse, error) {
	hoy := dia(s.now())
	desde := hoy.AddDate(0, 0, -6)

	materias, err := s.materias.List(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	enProceso, err := s.ordenes.List(ctx, repository.OrdenProduccionFilter{Estado: model.EstadoEnProceso})
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	recientes, err := s.ordenes.List(ctx, repository.OrdenProduccionFilter{Desde: desde})
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	pedidos, err := s.pedidos.List(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	nombres, err := repository.NombresRecetas(ctx, s.recetas)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	pedidosHoy := 0
	for _, p := range pedidos {
		if dia(p.FechaPedido).Equal(hoy) {
			pedidosHoy++
		}
	}

	return dto.DashboardResponse{
		LecheEnStock:     requerimiento.LecheDisponible(materias),
		OrdenesEnProceso: len(enProceso),
		PedidosHoy:       pedidosHoy,
		Alertas:          alertasDe(materias),
		LecheProcesada:   lecheProcesada(recientes, desde),
		MixProductos:     mixProductos(pedidos, nombres),
	}, nil
}

// lecheProcesada returns seven days starting at desde with the milk volume
// of the production orders launched each day.
func lecheProcesada(ordenes []model.OrdenProduccion, desde time.Time) []dto.LecheDiaResponse {
	out := make([]dto.LecheDiaResponse, 7)
	idx := make(map[string]int, 7)
	for i := range out {
		d := desde.AddDate(0, 0, i)
		out[i] = dto.LecheDiaResponse{Dia: diasSemana[d.Weekday()], Fecha: fmtFecha(d), Litros: decimal.Zero}
		idx[out[i].Fecha] = i
	}
	for _, o := range ordenes {
		if i, ok := idx[fmtFecha(dia(o.Fecha))]; ok {
			out[i].Litros = out[i].Litros.Add(o.VolumenLeche)
		}
	}
	return out
}

// mixProductos sums the ordered quantity per recipe, largest first.
func mixProductos(pedidos []model.Pedido, nombres map[uuid.UUID]string) []dto.MixProductoResponse {
	totales := make(map[string]decimal.Decimal)
	for _, p := range pedidos {
		for _, it := range p.Items {
			n := nombreReceta(nombres, it.RecetaID)
			totales[n] = totales[n].Add(it.Cantidad)
		}
	}
	out := make([]dto.MixProductoResponse, 0, len(totales))
	for n, q := range totales {
		out = append(out, dto.MixProductoResponse{RecetaNombre: n, Cantidad: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Cantidad.Cmp(out[j].Cantidad); c != 0 {
			return c > 0
		}
		return out[i].RecetaNombre < out[j].RecetaNombre
	})
	return out
}
