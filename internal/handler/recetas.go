package handler

import (
	"net/http"

	"abbafoods/internal/dto"
	"abbafoods/internal/service"

	"github.com/gin-gonic/gin"
)

type RecetasHandler struct{ svc service.RecetaService }

func NewRecetasHandler(svc service.RecetaService) *RecetasHandler { return &RecetasHandler{svc: svc} }

// Crear godoc
// @Summary  Crear receta
// @Description Coeficientes por litro de leche base. El nombre es único sin distinguir mayúsculas.
// @Tags     recetas
// @Accept   json
// @Produce  json
// @Param    body body     dto.CrearRecetaRequest true "Receta"
// @Success  201  {object} dto.RecetaResponse
// @Failure  409  {object} apierror.APIError
// @Router   /v1/recetas [post]
func (h *RecetasHandler) Crear(c *gin.Context) {
	var req dto.CrearRecetaRequest
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
// @Summary  Listar recetas con costos
// @Tags     recetas
// @Produce  json
// @Success  200 {array} dto.RecetaResponse
// @Router   /v1/recetas [get]
func (h *RecetasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecetasHandler) Obtener(c *gin.Context) {
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
// @Summary  Editar receta
// @Description Reemplaza la lista completa de ingredientes.
// @Tags     recetas
// @Accept   json
// @Produce  json
// @Param    id   path     string                    true "UUID"
// @Param    body body     dto.ActualizarRecetaRequest true "Receta"
// @Success  200  {object} dto.RecetaResponse
// @Router   /v1/recetas/{id} [put]
func (h *RecetasHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ActualizarRecetaRequest
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
// @Summary  Eliminar receta
// @Tags     recetas
// @Param    id  path string true "UUID"
// @Success  204
// @Failure  409 {object} apierror.APIError "La receta tiene órdenes de producción"
// @Router   /v1/recetas/{id} [delete]
func (h *RecetasHandler) Eliminar(c *gin.Context) {
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
