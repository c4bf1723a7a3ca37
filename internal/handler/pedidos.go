package handler

import (
	"fmt"
	"net/http"

	"abbafoods/internal/dto"
	"abbafoods/internal/service"

	"github.com/gin-gonic/gin"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler { return &PedidosHandler{svc: svc} }

// Crear godoc
// @Summary  Registrar pedido
// @Description Inserta el pedido y luego su ítem. Si falla el ítem, el pedido queda sin productos.
// @Tags     pedidos
// @Accept   json
// @Produce  json
// @Param    body body     dto.GuardarPedidoRequest true "Pedido"
// @Success  201  {object} dto.PedidoResponse
// @Failure  400  {object} apierror.APIError
// @Router   /v1/pedidos [post]
func (h *PedidosHandler) Crear(c *gin.Context) {
	var req dto.GuardarPedidoRequest
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
// @Summary  Listar pedidos
// @Tags     pedidos
// @Produce  json
// @Success  200 {array} dto.PedidoResponse
// @Router   /v1/pedidos [get]
func (h *PedidosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) Obtener(c *gin.Context) {
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

// @Summary  Editar pedido
// @Tags     pedidos
// @Accept   json
// @Produce  json
// @Param    id   path     string                  true "UUID"
// @Param    body body     dto.GuardarPedidoRequest true "Pedido"
// @Success  200  {object} dto.PedidoResponse
// @Router   /v1/pedidos/{id} [put]
func (h *PedidosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.GuardarPedidoRequest
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

// Eliminar godoc
// @Summary  Eliminar pedido
// @Tags     pedidos
// @Param    id  path string true "UUID"
// @Success  204
// @Failure  409 {object} apierror.APIError "El pedido ya tiene orden de producción"
// @Router   /v1/pedidos/{id} [delete]
func (h *PedidosHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GenerarOrdenProduccion godoc
// @Summary  Generar orden de producción desde el pedido
// @Description Usa el primer ítem del pedido; no verifica stock.
// @Tags     pedidos
// @Produce  json
// @Param    id  path     string true "UUID"
// @Success  201 {object} dto.OrdenProduccionResponse
// @Failure  409 {object} apierror.APIError
// @Router   /v1/pedidos/{id}/orden-produccion [post]
func (h *PedidosHandler) GenerarOrdenProduccion(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GenerarOrdenProduccion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// HojaPDF godoc
// @Summary  Hoja de pedido en PDF
// @Tags     pedidos
// @Produce  application/pdf
// @Param    id  path string true "UUID"
// @Success  200 {file} binary
// @Failure  404 {object} apierror.APIError
// @Router   /v1/pedidos/{id}/pdf [get]
func (h *PedidosHandler) HojaPDF(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	nombre, data, err := h.svc.HojaPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", nombre))
	c.Data(http.StatusOK, "application/pdf", data)
}
