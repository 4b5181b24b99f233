package handler

import (
	"net/http"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler { return &StockHandler{svc: svc} }

// CrearIngrediente godoc
// @Summary Da de alta un ingrediente con unidad base y stock mínimo
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearIngredienteRequest true "Ingrediente"
// @Success 201 {object} dto.IngredienteResponse
// @Router /v1/stock/ingredientes [post]
func (h *StockHandler) CrearIngrediente(c *gin.Context) {
	var req dto.CrearIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ing, err := h.svc.CrearIngrediente(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ingredienteToDTO(ing))
}

// ListarIngredientes godoc
// @Summary Lista ingredientes activos con su stock cacheado
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.IngredienteResponse
// @Router /v1/stock/ingredientes [get]
func (h *StockHandler) ListarIngredientes(c *gin.Context) {
	ingredientes, err := h.svc.ListIngredientes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.IngredienteResponse, 0, len(ingredientes))
	for i := range ingredientes {
		out = append(out, ingredienteToDTO(&ingredientes[i]))
	}
	c.JSON(http.StatusOK, out)
}

// DetalleIngrediente godoc
// @Summary Obtiene un ingrediente
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del ingrediente"
// @Success 200 {object} dto.IngredienteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/stock/ingredientes/{id} [get]
func (h *StockHandler) DetalleIngrediente(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ing, err := h.svc.Detalle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredienteToDTO(ing))
}

// RegistrarMovimiento godoc
// @Summary Apunta un movimiento manual al libro de stock (compra, ajuste, merma)
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimientoStockRequest true "Movimiento"
// @Success 201 {object} dto.MovimientoStockResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/stock/movimientos [post]
func (h *StockHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	mov, err := h.svc.RegistrarMovimiento(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, movimientoStockToDTO(mov))
}

// ListarMovimientos godoc
// @Summary Lista el libro de movimientos, filtrable por ingrediente y tipo
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param ingrediente_id query string false "ID de ingrediente"
// @Param tipo query string false "compra | venta | ajuste | merma | desperdicio | receta"
// @Param page query int false "Página"
// @Param limit query int false "Tamaño de página"
// @Success 200 {array} dto.MovimientoStockResponse
// @Router /v1/stock/movimientos [get]
func (h *StockHandler) ListarMovimientos(c *gin.Context) {
	page, limit := pagination(c)
	filter := repository.MovimientoStockFilter{
		Tipo:  model.StockTipo(c.Query("tipo")),
		Page:  page,
		Limit: limit,
	}
	if raw := c.Query("ingrediente_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.IngredienteID = &id
		}
	}
	movs, total, err := h.svc.ListMovimientos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.MovimientoStockResponse, 0, len(movs))
	for i := range movs {
		out = append(out, movimientoStockToDTO(&movs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "total": total, "page": page, "limit": limit})
}

// Alertas godoc
// @Summary Ingredientes activos en o bajo su stock mínimo
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AlertaStockResponse
// @Router /v1/stock/alertas [get]
func (h *StockHandler) Alertas(c *gin.Context) {
	ingredientes, err := h.svc.Alertas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.AlertaStockResponse, 0, len(ingredientes))
	for _, ing := range ingredientes {
		out = append(out, dto.AlertaStockResponse{
			IngredienteID: ing.ID.String(),
			Nombre:        ing.Nombre,
			StockActual:   ing.StockActual,
			StockMinimo:   ing.StockMinimo,
			Unidad:        ing.Unidad,
		})
	}
	c.JSON(http.StatusOK, out)
}

// VerificarConsistencia godoc
// @Summary Reconstruye el stock de un ingrediente desde el libro y lo compara con el cache
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del ingrediente"
// @Success 200 {object} dto.ConsistenciaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/stock/ingredientes/{id}/consistencia [get]
func (h *StockHandler) VerificarConsistencia(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.VerificarConsistencia(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
