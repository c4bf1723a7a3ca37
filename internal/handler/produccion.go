package handler

import (
	"net/http"

	"abbafoods/internal/dto"
	"abbafoods/internal/service"

	"github.com/gin-gonic/gin"
)

type ProduccionHandler struct{ svc service.ProduccionService }

func NewProduccionHandler(svc service.ProduccionService) *ProduccionHandler {
	return &ProduccionHandler{svc: svc}
}

// Calcular godoc
// @Summary  Calcular requerimientos
// @Description Insumos necesarios para un volumen de leche contra el stock actual. No modifica nada.
// @Tags     produccion
// @Accept   json
// @Produce  json
// @Param    body body     dto.CalcularRequest true "Receta y volumen"
// @Success  200  {object} dto.CalculoResponse
// @Failure  404  {object} apierror.APIError
// @Router   /v1/produccion/calcular [post]
func (h *ProduccionHandler) Calcular(c *gin.Context) {
	var req dto.CalcularRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Calcular(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Lanzar godoc
// @Summary  Lanzar orden de producción
// @Description Recalcula y crea la orden en_proceso. No descuenta stock.
// @Tags     produccion
// @Accept   json
// @Produce  json
// @Param    body body     dto.CalcularRequest true "Receta y volumen"
// @Success  201  {object} dto.OrdenProduccionResponse
// @Failure  409  {object} apierror.APIError "Stock insuficiente"
// @Router   /v1/produccion/ordenes [post]
func (h *ProduccionHandler) Lanzar(c *gin.Context) {
	var req dto.CalcularRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Lanzar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary  Listar órdenes de producción
// @Tags     produccion
// @Produce  json
// @Param    estado query   string false "en_proceso | terminado"
// @Success  200    {array} dto.OrdenProduccionResponse
// @Router   /v1/produccion/ordenes [get]
func (h *ProduccionHandler) Listar(c *gin.Context) {
	var filter dto.OrdenProduccionFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProduccionHandler) Obtener(c *gin.Context) {
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

// Terminar godoc
// @Summary  Terminar orden de producción
// @Tags     produccion
// @Accept   json
// @Produce  json
// @Param    id   path     string                  true "UUID"
// @Param    body body     dto.TerminarOrdenRequest true "Producido y merma"
// @Success  200  {object} dto.OrdenProduccionResponse
// @Failure  409  {object} apierror.APIError
// @Router   /v1/produccion/ordenes/{id}/terminar [patch]
func (h *ProduccionHandler) Terminar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.TerminarOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Terminar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
