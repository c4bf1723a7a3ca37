package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"abbafoods/internal/dto"
	"abbafoods/internal/infra"
	"abbafoods/internal/model"
	"abbafoods/internal/repository"
	"abbafoods/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const intentosNumeroPedido = 3

// PedidoService manages customer orders. An order is created with one
// product line; the order and its item are two separate writes.
type PedidoService interface {
	Crear(ctx context.Context, req dto.GuardarPedidoRequest) (dto.PedidoResponse, error)
	Listar(ctx context.Context) ([]dto.PedidoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.PedidoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarPedidoRequest) (dto.PedidoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	GenerarOrdenProduccion(ctx context.Context, id uuid.UUID) (dto.OrdenProduccionResponse, error)
	// HojaPDF returns the printable order sheet as file name and bytes. A
	// sheet already rendered in the background for the current version of
	// the order is served as is; otherwise it is rendered inline.
	HojaPDF(ctx context.Context, id uuid.UUID) (string, []byte, error)
}

type pedidoService struct {
	repo       repository.PedidoRepository
	recetas    repository.RecetaRepository
	ordenes    repository.OrdenProduccionRepository
	dispatcher *worker.Dispatcher
	pdfDir     string
	now        func() time.Time
	azar       func() int // suffix of the order number, 100..999
}

func NewPedidoService(
	repo repository.PedidoRepository,
	recetas repository.RecetaRepository,
	ordenes repository.OrdenProduccionRepository,
	dispatcher *worker.Dispatcher,
	pdfDir string,
) PedidoService {
	return &pedidoService{
		repo:       repo,
		recetas:    recetas,
		ordenes:    ordenes,
		dispatcher: dispatcher,
		pdfDir:     pdfDir,
		now:        time.Now,
		azar:       func() int { return rand.IntN(900) + 100 },
	}
}

// NumeroPedido formats PED-YYYYMMDD-NNN with the UTC date, the same day
// FechaPedido records.
func NumeroPedido(t time.Time, n int) string {
	return fmt.Sprintf("PED-%s-%03d", t.UTC().Format("20060102"), n)
}

func nombreReceta(nombres map[uuid.UUID]string, id uuid.UUID) string {
	if n, ok := nombres[id]; ok && n != "" {
		return n
	}
	return "Producto"
}

// resumenPedido joins items as "Yogur Griego · 10 L | ...".
func resumenPedido(items []model.PedidoItem, nombres map[uuid.UUID]string) string {
	if len(items) == 0 {
		return "Sin productos cargados"
	}
	partes := make([]string, 0, len(items))
	for _, it := range items {
		partes = append(partes, fmt.Sprintf("%s · %s %s", nombreReceta(nombres, it.RecetaID), it.Cantidad.String(), it.Unidad))
	}
	return strings.Join(partes, " | ")
}

func mapPedido(p model.Pedido, nombres map[uuid.UUID]string) dto.PedidoResponse {
	items := make([]dto.PedidoItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.PedidoItemResponse{
			ID:           it.ID,
			RecetaID:     it.RecetaID,
			RecetaNombre: nombreReceta(nombres, it.RecetaID),
			Cantidad:     it.Cantidad,
			Unidad:       it.Unidad,
		})
	}
	return dto.PedidoResponse{
		ID:             p.ID,
		NumeroPedido:   p.NumeroPedido,
		ClienteNombre:  p.ClienteNombre,
		FechaPedido:    fmtFecha(p.FechaPedido),
		FechaEntrega:   fmtFechaPtr(p.FechaEntrega),
		Estado:         p.Estado,
		LoteProduccion: p.LoteProduccion,
		Items:          items,
		Resumen:        resumenPedido(p.Items, nombres),
	}
}

type datosPedido struct {
	cliente  string
	entrega  *time.Time
	recetaID uuid.UUID
	cantidad decimal.Decimal
	unidad   string
}

func (s *pedidoService) validar(ctx context.Context, req dto.GuardarPedidoRequest) (datosPedido, error) {
	cliente := strings.TrimSpace(req.ClienteNombre)
	if cliente == "" {
		return datosPedido{}, invalido("el cliente es obligatorio")
	}
	if !req.Cantidad.IsPositive() {
		return datosPedido{}, invalido("la cantidad debe ser mayor a cero")
	}
	recetaID, err := uuid.Parse(req.RecetaID)
	if err != nil {
		return datosPedido{}, invalido("receta_id inválido")
	}
	if _, err := s.recetas.FindByID(ctx, recetaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return datosPedido{}, invalido("la receta seleccionada no existe")
		}
		return datosPedido{}, err
	}
	entrega, err := parseFechaOpcional(req.FechaEntrega, "fecha de entrega")
	if err != nil {
		return datosPedido{}, err
	}
	unidad := strings.TrimSpace(req.Unidad)
	if unidad == "" {
		unidad = "L"
	}
	return datosPedido{cliente: cliente, entrega: entrega, recetaID: recetaID, cantidad: req.Cantidad, unidad: unidad}, nil
}

// Crear inserts the order and then its single item. If the item write fails
// the order row stays without items and the error is returned.
func (s *pedidoService) Crear(ctx context.Context, req dto.GuardarPedidoRequest) (dto.PedidoResponse, error) {
	d, err := s.validar(ctx, req)
	if err != nil {
		return dto.PedidoResponse{}, err
	}

	now := s.now()
	p := &model.Pedido{
		ClienteNombre: d.cliente,
		FechaPedido:   dia(now),
		FechaEntrega:  d.entrega,
		Estado:        model.EstadoPendiente,
		EstadoPago:    model.PagoPendiente,
		EstadoEntrega: model.EntregaPendiente,
	}
	for intento := 1; ; intento++ {
		p.NumeroPedido = NumeroPedido(now, s.azar())
		err = s.repo.Create(ctx, p)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || intento == intentosNumeroPedido {
			return dto.PedidoResponse{}, err
		}
		p.ID = uuid.Nil
	}

	item := &model.PedidoItem{PedidoID: p.ID, RecetaID: d.recetaID, Cantidad: d.cantidad, Unidad: d.unidad}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		log.Error().Err(err).Str("pedido", p.NumeroPedido).Msg("pedido creado sin item")
		return dto.PedidoResponse{}, err
	}

	s.encolarPDF(ctx, p.ID)
	return s.Obtener(ctx, p.ID)
}

func (s *pedidoService) encolarPDF(ctx context.Context, id uuid.UUID) {
	if !s.dispatcher.Enabled() {
		return
	}
	if err := s.dispatcher.EnqueuePDFPedido(ctx, worker.PDFPedidoPayload{PedidoID: id.String()}); err != nil {
		log.Warn().Err(err).Str("pedido_id", id.String()).Msg("no se pudo encolar la hoja de pedido")
	}
}

func (s *pedidoService) Listar(ctx context.Context) ([]dto.PedidoResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	nombres, err := repository.NombresRecetas(ctx, s.recetas)
	if err != nil {
		return nil, err
	}
	result := make([]dto.PedidoResponse, 0, len(list))
	for _, p := range list {
		result = append(result, mapPedido(p, nombres))
	}
	return result, nil
}

func (s *pedidoService) buscar(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("pedido no encontrado")
		}
		return nil, err
	}
	return p, nil
}

func (s *pedidoService) Obtener(ctx context.Context, id uuid.UUID) (dto.PedidoResponse, error) {
	p, err := s.buscar(ctx, id)
	if err != nil {
		return dto.PedidoResponse{}, err
	}
	nombres, err := repository.NombresRecetas(ctx, s.recetas)
	if err != nil {
		return dto.PedidoResponse{}, err
	}
	return mapPedido(*p, nombres), nil
}

// Actualizar updates the first item, or inserts one when the order has none,
// then rewrites client and delivery date. The order row is written last so
// its UpdatedAt covers the item change.
func (s *pedidoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarPedidoRequest) (dto.PedidoResponse, error) {
	p, err := s.buscar(ctx, id)
	if err != nil {
		return dto.PedidoResponse{}, err
	}
	d, err := s.validar(ctx, req)
	if err != nil {
		return dto.PedidoResponse{}, err
	}

	if len(p.Items) > 0 {
		it := p.Items[0]
		it.RecetaID, it.Cantidad, it.Unidad = d.recetaID, d.cantidad, d.unidad
		err = s.repo.UpdateItem(ctx, &it)
	} else {
		err = s.repo.CreateItem(ctx, &model.PedidoItem{PedidoID: p.ID, RecetaID: d.recetaID, Cantidad: d.cantidad, Unidad: d.unidad})
	}
	if err != nil {
		return dto.PedidoResponse{}, err
	}

	p.ClienteNombre = d.cliente
	p.FechaEntrega = d.entrega
	if err := s.repo.UpdateDatos(ctx, p); err != nil {
		return dto.PedidoResponse{}, err
	}

	s.encolarPDF(ctx, p.ID)
	return s.Obtener(ctx, id)
}

func (s *pedidoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	p, err := s.buscar(ctx, id)
	if err != nil {
		return err
	}
	if p.LoteProduccion != nil && *p.LoteProduccion != "" {
		return conflicto("el pedido tiene la orden de producción %s y no puede eliminarse", *p.LoteProduccion)
	}
	return s.repo.Delete(ctx, id)
}

// GenerarOrdenProduccion creates an en_proceso production order for the first
// item of the order and links its batch back to the order. Stock is not
// checked here.
func (s *pedidoService) GenerarOrdenProduccion(ctx context.Context, id uuid.UUID) (dto.OrdenProduccionResponse, error) {
	p, err := s.buscar(ctx, id)
	if err != nil {
		return dto.OrdenProduccionResponse{}, err
	}
	if p.LoteProduccion != nil && *p.LoteProduccion != "" {
		return dto.OrdenProduccionResponse{}, conflicto("el pedido ya tiene la orden de producción %s", *p.LoteProduccion)
	}
	if len(p.Items) == 0 {
		return dto.OrdenProduccionResponse{}, invalido("el pedido no tiene productos cargados")
	}

	item := p.Items[0]
	now := s.now()
	o := &model.OrdenProduccion{
		RecetaID:          item.RecetaID,
		Fecha:             dia(now),
		Lote:              NuevoLote(now),
		Estado:            model.EstadoEnProceso,
		VolumenLeche:      item.Cantidad,
		CantidadProducida: decimal.Zero,
		Merma:             decimal.Zero,
	}
	if err := s.ordenes.Create(ctx, o); err != nil {
		return dto.OrdenProduccionResponse{}, err
	}
	if err := s.repo.AsignarLote(ctx, p.ID, o.Lote, model.EstadoEnProceso); err != nil {
		log.Error().Err(err).Str("lote", o.Lote).Str("pedido", p.NumeroPedido).
			Msg("orden de producción creada sin vincular al pedido")
		return dto.OrdenProduccionResponse{}, err
	}
	s.encolarPDF(ctx, p.ID)

	if r, err := s.recetas.FindByID(ctx, o.RecetaID); err == nil {
		o.Receta = r
	}
	log.Info().Str("lote", o.Lote).Str("pedido", p.NumeroPedido).Msg("orden de producción generada desde pedido")
	return mapOrdenProduccion(*o), nil
}

func (s *pedidoService) HojaPDF(ctx context.Context, id uuid.UUID) (string, []byte, error) {
	p, err := s.buscar(ctx, id)
	if err != nil {
		return "", nil, err
	}
	nombre := fmt.Sprintf("pedido_%s.pdf", p.NumeroPedido)
	if data, ok := infra.StoredPedidoPDF(s.pdfDir, p); ok {
		return nombre, data, nil
	}

	nombres, err := repository.NombresRecetas(ctx, s.recetas)
	if err != nil {
		return "", nil, err
	}
	var buf bytes.Buffer
	if err := infra.RenderPedidoPDF(&buf, p, nombres); err != nil {
		return "", nil, err
	}
	return nombre, buf.Bytes(), nil
}
