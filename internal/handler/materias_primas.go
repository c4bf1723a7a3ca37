package handler

import (
	"net/http"

	"abbafoods/internal/dto"
	"abbafoods/internal/service"

	"github.com/gin-gonic/gin"
)

type MateriasPrimasHandler struct{ svc service.MateriaPrimaService }

func NewMateriasPrimasHandler(svc service.MateriaPrimaService) *MateriasPrimasHandler {
	return &MateriasPrimasHandler{svc: svc}
}

// Crear godoc
// @Summary  Registrar materia prima
// @Tags     materias-primas
// @Accept   json
// @Produce  json
// @Param    body body     dto.CrearMateriaPrimaRequest true "Materia prima"
// @Success  201  {object} dto.MateriaPrimaResponse
// @Failure  400  {object} apierror.APIError
// @Failure  422  {object} apierror.ValidationError
// @Router   /v1/materias-primas [post]
func (h *MateriasPrimasHandler) Crear(c *gin.Context) {
	var req dto.CrearMateriaPrimaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary  Listar inventario
// @Description Materias primas ordenadas por nombre.
// @Tags     materias-primas
// @Produce  json
// @Success  200 {array} dto.MateriaPrimaResponse
// @Router   /v1/materias-primas [get]
func (h *MateriasPrimasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary  Obtener materia prima
// @Tags     materias-primas
// @Produce  json
// @Param    id  path     string true "UUID"
// @Success  200 {object} dto.MateriaPrimaResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/materias-primas/{id} [get]
func (h *MateriasPrimasHandler) Obtener(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary  Editar materia prima
// @Description Actualización parcial; único punto donde cambia el stock.
// @Tags     materias-primas
// @Accept   json
// @Produce  json
// @Param    id   path     string                           true "UUID"
// @Param    body body     dto.ActualizarMateriaPrimaRequest true "Campos a modificar"
// @Success  200  {object} dto.MateriaPrimaResponse
// @Failure  404  {object} apierror.APIError
// @Router   /v1/materias-primas/{id} [put]
func (h *MateriasPrimasHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ActualizarMateriaPrimaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alertas godoc
// @Summary  Alertas de stock bajo
// @Tags     materias-primas
// @Produce  json
// @Success  200 {array} dto.AlertaStockResponse
// @Router   /v1/materias-primas/alertas [get]
func (h *MateriasPrimasHandler) Alertas(c *gin.Context) {
	resp, err := h.svc.Alertas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary  Agregar presentación de compra
// @Tags     materias-primas
// @Accept   json
// @Produce  json
// @Param    id   path     string                      true "UUID de la materia prima"
// @Param    body body     dto.CrearPresentacionRequest true "Presentación"
// @Success  201  {object} dto.PresentacionResponse
// @Router   /v1/materias-primas/{id}/presentaciones [post]
func (h *MateriasPrimasHandler) CrearPresentacion(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.CrearPresentacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearPresentacion(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MateriasPrimasHandler) ListarPresentaciones(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarPresentaciones(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
