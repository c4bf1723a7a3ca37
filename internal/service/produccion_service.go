package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"abbafoods/internal/dto"
	"abbafoods/internal/metrics"
	"abbafoods/internal/model"
	"abbafoods/internal/repository"
	"abbafoods/internal/requerimiento"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProduccionService runs the requirement calculator and manages production
// orders. Launching an order never touches raw-material stock.
type ProduccionService interface {
	Calcular(ctx context.Context, req dto.CalcularRequest) (dto.CalculoResponse, error)
	Lanzar(ctx context.Context, req dto.CalcularRequest) (dto.OrdenProduccionResponse, error)
	Listar(ctx context.Context, filter dto.OrdenProduccionFilter) ([]dto.OrdenProduccionResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.OrdenProduccionResponse, error)
	Terminar(ctx context.Context, id uuid.UUID, req dto.TerminarOrdenRequest) (dto.OrdenProduccionResponse, error)
}

type produccionService struct {
	recetas  repository.RecetaRepository
	materias repository.MateriaPrimaRepository
	ordenes  repository.OrdenProduccionRepository
	metrics  *metrics.Registry
	now      func() time.Time
}

func NewProduccionService(
	recetas repository.RecetaRepository,
	materias repository.MateriaPrimaRepository,
	ordenes repository.OrdenProduccionRepository,
	mreg *metrics.Registry,
) ProduccionService {
	return &produccionService{
		recetas:  recetas,
		materias: materias,
		ordenes:  ordenes,
		metrics:  mreg,
		now:      time.Now,
	}
}

// NuevoLote builds the batch label OP-YYYYMMDDHHMM from t in UTC.
func NuevoLote(t time.Time) string {
	return "OP-" + t.UTC().Format("200601021504")
}

func mapOrdenProduccion(o model.OrdenProduccion) dto.OrdenProduccionResponse {
	nombre := ""
	if o.Receta != nil {
		nombre = o.Receta.Nombre
	}
	return dto.OrdenProduccionResponse{
		ID:                o.ID,
		RecetaID:          o.RecetaID,
		RecetaNombre:      nombre,
		Fecha:             fmtFecha(o.Fecha),
		Lote:              o.Lote,
		Estado:            o.Estado,
		VolumenLeche:      o.VolumenLeche,
		CantidadProducida: o.CantidadProducida,
		Merma:             o.Merma,
	}
}

func mapCalculo(r model.Receta, res requerimiento.Resultado) dto.CalculoResponse {
	reqs := make([]dto.RequerimientoResponse, 0, len(res.Requerimientos))
	for _, q := range res.Requerimientos {
		reqs = append(reqs, dto.RequerimientoResponse{
			MaterialID:     q.MaterialID,
			MaterialNombre: q.MaterialNombre,
			Unidad:         q.Unidad,
			Necesario:      q.Necesario,
			Disponible:     q.Disponible,
			Insuficiente:   q.Insuficiente,
		})
	}
	return dto.CalculoResponse{
		RecetaID:          r.ID,
		RecetaNombre:      r.Nombre,
		VolumenLeche:      res.VolumenLeche,
		LecheDisponible:   res.LecheDisponible,
		LecheInsuficiente: res.LecheInsuficiente,
		Requerimientos:    reqs,
		PuedeLanzar:       res.PuedeLanzar(),
	}
}

func (s *produccionService) calcular(ctx context.Context, req dto.CalcularRequest) (*model.Receta, requerimiento.Resultado, error) {
	recetaID, err := uuid.Parse(req.RecetaID)
	if err != nil {
		return nil, requerimiento.Resultado{}, invalido("receta_id inválido")
	}
	if req.VolumenLeche.IsNegative() {
		return nil, requerimiento.Resultado{}, invalido("el volumen de leche no puede ser negativo")
	}
	receta, err := s.recetas.FindByID(ctx, recetaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, requerimiento.Resultado{}, noEncontrado("receta no encontrada")
		}
		return nil, requerimiento.Resultado{}, err
	}
	stock, err := s.materias.List(ctx)
	if err != nil {
		return nil, requerimiento.Resultado{}, err
	}
	return receta, requerimiento.Calcular(*receta, req.VolumenLeche, stock), nil
}

func (s *produccionService) Calcular(ctx context.Context, req dto.CalcularRequest) (dto.CalculoResponse, error) {
	receta, res, err := s.calcular(ctx, req)
	if err != nil {
		return dto.CalculoResponse{}, err
	}
	return mapCalculo(*receta, res), nil
}

// Lanzar recomputes the requirements against current stock and creates an
// en_proceso order only when nothing is short.
func (s *produccionService) Lanzar(ctx context.Context, req dto.CalcularRequest) (dto.OrdenProduccionResponse, error) {
	receta, res, err := s.calcular(ctx, req)
	if err != nil {
		return dto.OrdenProduccionResponse{}, err
	}
	if !res.VolumenLeche.IsPositive() {
		return dto.OrdenProduccionResponse{}, invalido("el volumen de leche debe ser mayor a cero")
	}
	if !res.PuedeLanzar() {
		return dto.OrdenProduccionResponse{}, conflicto("stock insuficiente: %s", faltantes(res))
	}

	now := s.now()
	o := &model.OrdenProduccion{
		RecetaID:          receta.ID,
		Fecha:             dia(now),
		Lote:              NuevoLote(now),
		Estado:            model.EstadoEnProceso,
		VolumenLeche:      res.VolumenLeche,
		CantidadProducida: decimal.Zero,
		Merma:             decimal.Zero,
	}
	if err := s.ordenes.Create(ctx, o); err != nil {
		return dto.OrdenProduccionResponse{}, err
	}
	o.Receta = receta
	s.metrics.OrdenLanzada()
	log.Info().Str("lote", o.Lote).Str("receta", receta.Nombre).
		Str("volumen", o.VolumenLeche.String()).Msg("orden de producción lanzada")
	return mapOrdenProduccion(*o), nil
}

func faltantes(res requerimiento.Resultado) string {
	var nombres []string
	if res.LecheInsuficiente {
		nombres = append(nombres, "leche")
	}
	for _, q := range res.Requerimientos {
		if q.Insuficiente {
			nombres = append(nombres, q.MaterialNombre)
		}
	}
	return strings.Join(nombres, ", ")
}

func (s *produccionService) Listar(ctx context.Context, filter dto.OrdenProduccionFilter) ([]dto.OrdenProduccionResponse, error) {
	list, err := s.ordenes.List(ctx, repository.OrdenProduccionFilter{Estado: filter.Estado})
	if err != nil {
		return nil, err
	}
	result := make([]dto.OrdenProduccionResponse, 0, len(list))
	for _, o := range list {
		result = append(result, mapOrdenProduccion(o))
	}
	return result, nil
}

func (s *produccionService) buscar(ctx context.Context, id uuid.UUID) (*model.OrdenProduccion, error) {
	o, err := s.ordenes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("orden de producción no encontrada")
		}
		return nil, err
	}
	return o, nil
}

func (s *produccionService) Obtener(ctx context.Context, id uuid.UUID) (dto.OrdenProduccionResponse, error) {
	o, err := s.buscar(ctx, id)
	if err != nil {
		return dto.OrdenProduccionResponse{}, err
	}
	return mapOrdenProduccion(*o), nil
}

// Terminar closes an en_proceso order with its output and waste.
func (s *produccionService) Terminar(ctx context.Context, id uuid.UUID, req dto.TerminarOrdenRequest) (dto.OrdenProduccionResponse, error) {
	o, err := s.buscar(ctx, id)
	if err != nil {
		return dto.OrdenProduccionResponse{}, err
	}
	if o.Estado == model.EstadoTerminado {
		return dto.OrdenProduccionResponse{}, conflicto("la orden %s ya está terminada", o.Lote)
	}
	if req.CantidadProducida.IsNegative() || req.Merma.IsNegative() {
		return dto.OrdenProduccionResponse{}, invalido("cantidad producida y merma no pueden ser negativas")
	}

	o.Estado = model.EstadoTerminado
	o.CantidadProducida = req.CantidadProducida
	o.Merma = req.Merma
	if err := s.ordenes.Update(ctx, o); err != nil {
		return dto.OrdenProduccionResponse{}, err
	}
	return mapOrdenProduccion(*o), nil
}
