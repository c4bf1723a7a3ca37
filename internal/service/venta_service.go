package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"abbafoods/internal/dto"
	"abbafoods/internal/model"
	"abbafoods/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filtros de ventas.
const (
	FiltroTodas      = "all"
	FiltroPreventas  = "preventas"
	FiltroRealizadas = "realizadas"
)

// VentaService is the sales view over orders: payment and delivery are two
// independent flags, each updated on its own.
type VentaService interface {
	Listar(ctx context.Context, filtro string) ([]dto.VentaResponse, error)
	ActualizarEstadoPago(ctx context.Context, id uuid.UUID, estado string) (dto.VentaResponse, error)
	ActualizarEstadoEntrega(ctx context.Context, id uuid.UUID, estado string) (dto.VentaResponse, error)
}

type ventaService struct {
	pedidos repository.PedidoRepository
	recetas repository.RecetaRepository
}

func NewVentaService(pedidos repository.PedidoRepository, recetas repository.RecetaRepository) VentaService {
	return &ventaService{pedidos: pedidos, recetas: recetas}
}

// resumenVenta joins items as "Yogur Griego (10 L), ...".
func resumenVenta(items []model.PedidoItem, nombres map[uuid.UUID]string) string {
	if len(items) == 0 {
		return "Sin productos"
	}
	partes := make([]string, 0, len(items))
	for _, it := range items {
		partes = append(partes, fmt.Sprintf("%s (%s %s)", nombreReceta(nombres, it.RecetaID), it.Cantidad.String(), it.Unidad))
	}
	return strings.Join(partes, ", ")
}

func mapVenta(p model.Pedido, nombres map[uuid.UUID]string) dto.VentaResponse {
	return dto.VentaResponse{
		ID:            p.ID,
		NumeroPedido:  p.NumeroPedido,
		ClienteNombre: p.ClienteNombre,
		FechaPedido:   fmtFecha(p.FechaPedido),
		FechaEntrega:  fmtFechaPtr(p.FechaEntrega),
		Productos:     resumenVenta(p.Items, nombres),
		EstadoPago:    p.EstadoPago,
		EstadoEntrega: p.EstadoEntrega,
		Etiqueta:      p.EtiquetaVenta(),
	}
}

func incluir(p model.Pedido, filtro string) bool {
	switch filtro {
	case FiltroPreventas:
		return !p.Entregado()
	case FiltroRealizadas:
		return p.Entregado()
	default:
		return true
	}
}

func (s *ventaService) Listar(ctx context.Context, filtro string) ([]dto.VentaResponse, error) {
	switch filtro {
	case "":
		filtro = FiltroTodas
	case FiltroTodas, FiltroPreventas, FiltroRealizadas:
	default:
		return nil, invalido("filtro inválido: %s", filtro)
	}

	list, err := s.pedidos.List(ctx)
	if err != nil {
		return nil, err
	}
	nombres, err := repository.NombresRecetas(ctx, s.recetas)
	if err != nil {
		return nil, err
	}
	result := make([]dto.VentaResponse, 0, len(list))
	for _, p := range list {
		if incluir(p, filtro) {
			result = append(result, mapVenta(p, nombres))
		}
	}
	return result, nil
}

func (s *ventaService) ActualizarEstadoPago(ctx context.Context, id uuid.UUID, estado string) (dto.VentaResponse, error) {
	if estado != model.PagoPendiente && estado != model.PagoPagado {
		return dto.VentaResponse{}, invalido("estado de pago inválido: %s", estado)
	}
	return s.actualizar(ctx, id, func() error { return s.pedidos.UpdateEstadoPago(ctx, id, estado) })
}

func (s *ventaService) ActualizarEstadoEntrega(ctx context.Context, id uuid.UUID, estado string) (dto.VentaResponse, error) {
	if estado != model.EntregaPendiente && estado != model.EntregaEntregado {
		return dto.VentaResponse{}, invalido("estado de entrega inválido: %s", estado)
	}
	return s.actualizar(ctx, id, func() error { return s.pedidos.UpdateEstadoEntrega(ctx, id, estado) })
}

func (s *ventaService) actualizar(ctx context.Context, id uuid.UUID, update func() error) (dto.VentaResponse, error) {
	if err := update(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.VentaResponse{}, noEncontrado("pedido no encontrado")
		}
		return dto.VentaResponse{}, err
	}
	p, err := s.pedidos.FindByID(ctx, id)
	if err != nil {
		return dto.VentaResponse{}, err
	}
	nombres, err := repository.NombresRecetas(ctx, s.recetas)
	if err != nil {
		return dto.VentaResponse{}, err
	}
	return mapVenta(*p, nombres), nil
}
