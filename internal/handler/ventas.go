package handler

import (
	"net/http"

	"abbafoods/internal/dto"
	"abbafoods/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// Listar godoc
// @Summary      Listar ventas
// @Description  Pedidos con estado de pago, estado de entrega y etiqueta derivada.
// @Tags         ventas
// @Produce      json
// @Param        filtro query   string false "all | preventas | realizadas"
// @Success      200    {array} dto.VentaResponse
// @Failure      422    {object} apierror.ValidationError
// @Router       /v1/ventas [get]
func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.VentaFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter.Filtro)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EstadoPago godoc
// @Summary      Marcar pago
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        id   path     string                true "UUID del pedido"
// @Param        body body     dto.EstadoPagoRequest true "pendiente | pagado"
// @Success      200  {object} dto.VentaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/ventas/{id}/estado-pago [patch]
func (h *VentasHandler) EstadoPago(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.EstadoPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEstadoPago(c.Request.Context(), id, req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EstadoEntrega godoc
// @Summary      Marcar entrega
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        id   path     string                   true "UUID del pedido"
// @Param        body body     dto.EstadoEntregaRequest true "pendiente | entregado"
// @Success      200  {object} dto.VentaResponse
// @Router       /v1/ventas/{id}/estado-entrega [patch]
func (h *VentasHandler) EstadoEntrega(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.EstadoEntregaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEstadoEntrega(c.Request.Context(), id, req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
