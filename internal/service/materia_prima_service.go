package service

import (
	"context"
	"errors"
	"strings"

	"abbafoods/internal/dto"
	"abbafoods/internal/model"
	"abbafoods/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MateriaPrimaService manages the raw-material inventory. Stock changes only
// through Crear and Actualizar.
type MateriaPrimaService interface {
	Crear(ctx context.Context, req dto.CrearMateriaPrimaRequest) (dto.MateriaPrimaResponse, error)
	Listar(ctx context.Context) ([]dto.MateriaPrimaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.MateriaPrimaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMateriaPrimaRequest) (dto.MateriaPrimaResponse, error)
	Alertas(ctx context.Context) ([]dto.AlertaStockResponse, error)

	CrearPresentacion(ctx context.Context, materialID uuid.UUID, req dto.CrearPresentacionRequest) (dto.PresentacionResponse, error)
	ListarPresentaciones(ctx context.Context, materialID uuid.UUID) ([]dto.PresentacionResponse, error)
}

type materiaPrimaService struct {
	repo repository.MateriaPrimaRepository
}

func NewMateriaPrimaService(repo repository.MateriaPrimaRepository) MateriaPrimaService {
	return &materiaPrimaService{repo: repo}
}

func mapMateriaPrima(m model.MateriaPrima) dto.MateriaPrimaResponse {
	venc := "N/A"
	if m.FechaVencimiento != nil {
		venc = fmtFecha(*m.FechaVencimiento)
	}
	return dto.MateriaPrimaResponse{
		ID:               m.ID,
		Nombre:           m.Nombre,
		Proveedor:        m.Proveedor,
		Cantidad:         m.Cantidad,
		Unidad:           m.Unidad,
		FechaVencimiento: venc,
		Tipo:             m.Tipo,
		StockMinimo:      m.StockMinimo,
		StockBajo:        m.StockBajo(),
	}
}

func mapPresentacion(p model.PresentacionMaterial) dto.PresentacionResponse {
	return dto.PresentacionResponse{
		ID:            p.ID,
		MaterialID:    p.MaterialID,
		Descripcion:   p.Descripcion,
		TamanoPaquete: p.TamanoPaquete,
		Unidad:        p.Unidad,
		Costo:         p.Costo,
		CostoUnitario: p.CostoUnitario(),
	}
}

// alertasDe returns one alert per material strictly below its threshold.
func alertasDe(list []model.MateriaPrima) []dto.AlertaStockResponse {
	out := make([]dto.AlertaStockResponse, 0)
	for _, m := range list {
		if !m.StockBajo() {
			continue
		}
		out = append(out, dto.AlertaStockResponse{
			MaterialID:  m.ID,
			Nombre:      m.Nombre,
			Cantidad:    m.Cantidad,
			StockMinimo: m.StockMinimo,
			Unidad:      m.Unidad,
			Faltante:    m.StockMinimo.Sub(m.Cantidad),
		})
	}
	return out
}

func limpiarOpcional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (s *materiaPrimaService) Crear(ctx context.Context, req dto.CrearMateriaPrimaRequest) (dto.MateriaPrimaResponse, error) {
	venc, err := parseFechaOpcional(req.FechaVencimiento, "fecha de vencimiento")
	if err != nil {
		return dto.MateriaPrimaResponse{}, err
	}
	m := &model.MateriaPrima{
		Nombre:           strings.TrimSpace(req.Nombre),
		Proveedor:        limpiarOpcional(req.Proveedor),
		Cantidad:         req.Cantidad,
		Unidad:           strings.TrimSpace(req.Unidad),
		FechaVencimiento: venc,
		Tipo:             req.Tipo,
		StockMinimo:      req.StockMinimo,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return dto.MateriaPrimaResponse{}, err
	}
	return mapMateriaPrima(*m), nil
}

func (s *materiaPrimaService) Listar(ctx context.Context) ([]dto.MateriaPrimaResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.MateriaPrimaResponse, 0, len(list))
	for _, m := range list {
		result = append(result, mapMateriaPrima(m))
	}
	return result, nil
}

func (s *materiaPrimaService) buscar(ctx context.Context, id uuid.UUID) (*model.MateriaPrima, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noEncontrado("materia prima no encontrada")
		}
		return nil, err
	}
	return m, nil
}

func (s *materiaPrimaService) Obtener(ctx context.Context, id uuid.UUID) (dto.MateriaPrimaResponse, error) {
	m, err := s.buscar(ctx, id)
	if err != nil {
		return dto.MateriaPrimaResponse{}, err
	}
	return mapMateriaPrima(*m), nil
}

func (s *materiaPrimaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMateriaPrimaRequest) (dto.MateriaPrimaResponse, error) {
	m, err := s.buscar(ctx, id)
	if err != nil {
		return dto.MateriaPrimaResponse{}, err
	}

	if req.Nombre != nil {
		m.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Proveedor != nil {
		m.Proveedor = limpiarOpcional(req.Proveedor)
	}
	if req.Cantidad != nil {
		m.Cantidad = *req.Cantidad
	}
	if req.Unidad != nil {
		m.Unidad = strings.TrimSpace(*req.Unidad)
	}
	if req.FechaVencimiento != nil {
		// "" clears the expiry date
		venc, err := parseFechaOpcional(req.FechaVencimiento, "fecha de vencimiento")
		if err != nil {
			return dto.MateriaPrimaResponse{}, err
		}
		m.FechaVencimiento = venc
	}
	if req.Tipo != nil {
		m.Tipo = *req.Tipo
	}
	if req.StockMinimo != nil {
		m.StockMinimo = *req.StockMinimo
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return dto.MateriaPrimaResponse{}, err
	}
	return mapMateriaPrima(*m), nil
}

func (s *materiaPrimaService) Alertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return alertasDe(list), nil
}

func (s *materiaPrimaService) CrearPresentacion(ctx context.Context, materialID uuid.UUID, req dto.CrearPresentacionRequest) (dto.PresentacionResponse, error) {
	if _, err := s.buscar(ctx, materialID); err != nil {
		return dto.PresentacionResponse{}, err
	}
	p := &model.PresentacionMaterial{
		MaterialID:    materialID,
		Descripcion:   strings.TrimSpace(req.Descripcion),
		TamanoPaquete: req.TamanoPaquete,
		Unidad:        strings.TrimSpace(req.Unidad),
		Costo:         req.Costo,
	}
	if err := s.repo.CreatePresentacion(ctx, p); err != nil {
		return dto.PresentacionResponse{}, err
	}
	return mapPresentacion(*p), nil
}

func (s *materiaPrimaService) ListarPresentaciones(ctx context.Context, materialID uuid.UUID) ([]dto.PresentacionResponse, error) {
	if _, err := s.buscar(ctx, materialID); err != nil {
		return nil, err
	}
	list, err := s.repo.ListPresentaciones(ctx, materialID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.PresentacionResponse, 0, len(list))
	for _, p := range list {
		result = append(result, mapPresentacion(p))
	}
	return result, nil
}
