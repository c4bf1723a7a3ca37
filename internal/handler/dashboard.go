package handler

import (
	"net/http"

	"abbafoods/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Resumen godoc
// @Summary  Resumen del tablero
// @Description Leche en stock, órdenes en proceso, pedidos del día, alertas, leche procesada (7 días) y mix de productos.
// @Tags     dashboard
// @Produce  json
// @Success  200 {object} dto.DashboardResponse
// @Router   /v1/dashboard [get]
func (h *DashboardHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
