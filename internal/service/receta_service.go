package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"abbafoods/internal/dto"
	"abbafoods/internal/metrics"
	"abbafoods/internal/model"
	"abbafoods/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// The list is cached under a key carrying a version number. Writes bump the
// version instead of deleting the key, so a list read before a write can
// only land under a version nobody reads anymore.
const recetasVersionKey = "recetas:version"

func recetasCacheKey(version int64) string {
	return fmt.Sprintf("recetas:lista:v%d", version)
}

// RecetaService manages formulas normalized to one liter of milk.
type RecetaService interface {
	Crear(ctx context.Context, req dto.CrearRecetaRequest) (dto.RecetaResponse, error)
	Listar(ctx context.Context) ([]dto.RecetaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.RecetaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (dto.RecetaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type recetaService struct {
	repo     repository.RecetaRepository
	materias repository.MateriaPrimaRepository
	ordenes  repository.OrdenProduccionRepository
	rdb      *redis.Client // nil disables the list cache
	cacheTTL time.Duration
	metrics  *metrics.Registry
}

func NewRecetaService(
	repo repository.RecetaRepository,
	materias repository.MateriaPrimaRepository,
	ordenes repository.OrdenProduccionRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
	mreg *metrics.Registry,
) RecetaService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &recetaService{
		repo:     repo,
		materias: materias,
		ordenes:  ordenes,
		rdb:      rdb,
		cacheTTL: cacheTTL,
		metrics:  mreg,
	}
}

var baseLeche = decimal.NewFromInt(1)

func mapReceta(r model.Receta) dto.RecetaResponse {
	resp := dto.RecetaResponse{
		ID:            r.ID,
		Nombre:        r.Nombre,
		Notas:         r.Notas,
		BaseLeche:     baseLeche,
		Ingredientes:  make([]dto.IngredienteResponse, 0, len(r.Ingredientes)),
		CostoPorLitro: decimal.Zero,
	}
	for _, ing := range r.Ingredientes {
		ir := dto.IngredienteResponse{
			ID:               ing.ID,
			MaterialID:       ing.MaterialID,
			MaterialNombre:   ing.MaterialNombre,
			CantidadPorLitro: ing.CantidadPorLitro,
			Unidad:           ing.Unidad,
			PresentacionID:   ing.PresentacionID,
		}
		if ing.Presentacion != nil {
			unit := ing.Presentacion.CostoUnitario()
			porLitro := ing.CantidadPorLitro.Mul(unit).Round(4)
			desc := ing.Presentacion.Descripcion
			ir.Presentacion = &desc
			ir.CostoUnitario = &unit
			ir.CostoPorLitro = &porLitro
			resp.CostoPorLitro = resp.CostoPorLitro.Add(porLitro)
		}
		resp.Ingredientes = append(resp.Ingredientes, ir)
	}
	return resp
}

// construirIngredientes validates the referenced materials and presentations
// and returns the rows in request order.
func (s *recetaService) construirIngredientes(ctx context.Context, reqs []dto.IngredienteRequest) ([]model.IngredienteReceta, error) {
	out := make([]model.IngredienteReceta, 0, len(reqs))
	for i, req := range reqs {
		ing := model.IngredienteReceta{
			MaterialNombre:   strings.TrimSpace(req.MaterialNombre),
			CantidadPorLitro: req.CantidadPorLitro,
			Unidad:           strings.TrimSpace(req.Unidad),
			Posicion:         i,
		}
		if req.MaterialID != nil && *req.MaterialID != "" {
			id, err := uuid.Parse(*req.MaterialID)
			if err != nil {
				return nil, invalido("material_id inválido en el ingrediente %d", i+1)
			}
			if _, err := s.materias.FindByID(ctx, id); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, invalido("la materia prima del ingrediente %q no existe", ing.MaterialNombre)
				}
				return nil, err
			}
			ing.MaterialID = &id
		}
		if req.PresentacionID != nil && *req.PresentacionID != "" {
			if ing.MaterialID == nil {
				return nil, invalido("el ingrediente %q tiene presentación pero no materia prima", ing.MaterialNombre)
			}
			pid, err := uuid.Parse(*req.PresentacionID)
			if err != nil {
				return nil, invalido("presentacion_id inválido en el ingrediente %d", i+1)
			}
			pres, err := s.materias.ListPresentaciones(ctx, *ing.MaterialID)
			if err != nil {
				return nil, err
			}
			encontrada := false
			for _, p := range pres {
				if p.ID == pid {
					encontrada = true
					break
				}
			}
			if !encontrada {
				return nil, invalido("la presentación del ingrediente %q no pertenece a su materia prima", ing.MaterialNombre)
			}
			ing.PresentacionID = &pid
		}
		out = append(out, ing)
	}
	return out, nil
}

func (s *recetaService) verificarNombre(ctx context.Context, nombre string, propio uuid.UUID) error {
	existing, err := s.repo.FindByNombre(ctx, nombre)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil && existing.ID != propio {
		return conflicto("ya existe una receta con ese nombre")
	}
	return nil
}

func (s *recetaService) Crear(ctx context.Context, req dto.CrearRecetaRequest) (dto.RecetaResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if err := s.verificarNombre(ctx, nombre, uuid.Nil); err != nil {
		return dto.RecetaResponse{}, err
	}
	ings, err := s.construirIngredientes(ctx, req.Ingredientes)
	if err != nil {
		return dto.RecetaResponse{}, err
	}

	r := &model.Receta{Nombre: nombre, Notas: strings.TrimSpace(req.Notas), Ingredientes: ings}
	if err := s.repo.Create(ctx, r); err != nil {
		return dto.RecetaResponse{}, err
	}
	s.invalidarCache(ctx)
	return s.Obtener(ctx, r.ID)
}

// Listar serves from the Redis cache when possible. Cache errors only
// degrade to a database read.
func (s *recetaService) Listar(ctx context.Context) ([]dto.RecetaResponse, error) {
	clave := ""
	if s.rdb != nil {
		var (
			cached []byte
			err    error
		)
		clave, err = s.claveCache(ctx)
		if err == nil {
			cached, err = s.rdb.Get(ctx, clave).Bytes()
		}
		switch {
		case err == nil:
			var resp []dto.RecetaResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				s.metrics.Cache("hit")
				return resp, nil
			}
		case errors.Is(err, redis.Nil):
			s.metrics.Cache("miss")
		default:
			clave = ""
			s.metrics.Cache("error")
			log.Warn().Err(err).Msg("recetas: cache read failed")
		}
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RecetaResponse, 0, len(list))
	for _, r := range list {
		resp = append(resp, mapReceta(r))
	}

	if clave != "" {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			if err := s.rdb.Set(context.Background(), clave, b, s.cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("recetas: cache write failed")
			}
		}
	}
	return resp, nil
}

// claveCache reads the current cache version. A missing version is 0.
func (s *recetaService) claveCache(ctx context.Context) (string, error) {
	v, err := s.rdb.Get(ctx, recetasVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return recetasCacheKey(v), nil
}

func (s *recetaService) buscar(ctx context.Context, id uuid.UUID) (*model.Receta, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("receta no encontrada")
		}
		return nil, err
	}
	return r, nil
}

func (s *recetaService) Obtener(ctx context.Context, id uuid.UUID) (dto.RecetaResponse, error) {
	r, err := s.buscar(ctx, id)
	if err != nil {
		return dto.RecetaResponse{}, err
	}
	return mapReceta(*r), nil
}

func (s *recetaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (dto.RecetaResponse, error) {
	r, err := s.buscar(ctx, id)
	if err != nil {
		return dto.RecetaResponse{}, err
	}
	nombre := strings.TrimSpace(req.Nombre)
	if !strings.EqualFold(nombre, r.Nombre) {
		if err := s.verificarNombre(ctx, nombre, id); err != nil {
			return dto.RecetaResponse{}, err
		}
	}
	ings, err := s.construirIngredientes(ctx, req.Ingredientes)
	if err != nil {
		return dto.RecetaResponse{}, err
	}

	r.Nombre = nombre
	r.Notas = strings.TrimSpace(req.Notas)
	r.Ingredientes = ings
	if err := s.repo.Update(ctx, r); err != nil {
		return dto.RecetaResponse{}, err
	}
	s.invalidarCache(ctx)
	return s.Obtener(ctx, id)
}

func (s *recetaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.buscar(ctx, id); err != nil {
		return err
	}
	n, err := s.ordenes.CountByReceta(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflicto("la receta tiene %d órdenes de producción y no puede eliminarse", n)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidarCache(ctx)
	return nil
}

func (s *recetaService) invalidarCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, recetasVersionKey).Err(); err != nil {
		log.Warn().Err(err).Msg("recetas: cache invalidation failed")
	}
}
