package handler

import (
	"net/http"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/service"

	"github.com/gin-gonic/gin"
)

type CocinaHandler struct{ svc service.CocinaService }

func NewCocinaHandler(svc service.CocinaService) *CocinaHandler { return &CocinaHandler{svc: svc} }

// Despachar godoc
// @Summary Despacha a cocina una foto de los items de la venta abierta
// @Tags cocina
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la venta"
// @Success 201 {object} dto.PedidoCocinaResponse
// @Failure 422 {object} apierror.APIError "Venta no abierta o sin items"
// @Router /v1/ventas/{id}/despachar [post]
func (h *CocinaHandler) Despachar(c *gin.Context) {
	ventaID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	pedido, err := h.svc.Despachar(c.Request.Context(), ventaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pedidoToDTO(pedido))
}

// ActualizarEstado godoc
// @Summary Avanza un pedido: pendiente → en_curso → listo
// @Tags cocina
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del pedido"
// @Param body body dto.ActualizarPedidoRequest true "Nuevo estado"
// @Success 200 {object} dto.PedidoCocinaResponse
// @Failure 422 {object} apierror.APIError "Transición inválida"
// @Router /v1/cocina/pedidos/{id} [patch]
func (h *CocinaHandler) ActualizarEstado(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pedido, err := h.svc.ActualizarEstado(c.Request.Context(), id, model.PedidoEstado(req.Estado))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pedidoToDTO(pedido))
}

// Listar godoc
// @Summary Lista pedidos de cocina por estado
// @Tags cocina
// @Produce json
// @Security BearerAuth
// @Param estado query string false "pendiente | en_curso | listo (default pendiente)"
// @Success 200 {array} dto.PedidoCocinaResponse
// @Router /v1/cocina/pedidos [get]
func (h *CocinaHandler) Listar(c *gin.Context) {
	estado := model.PedidoEstado(c.DefaultQuery("estado", string(model.PedidoPendiente)))
	pedidos, err := h.svc.ListPorEstado(c.Request.Context(), estado)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.PedidoCocinaResponse, 0, len(pedidos))
	for i := range pedidos {
		out = append(out, pedidoToDTO(&pedidos[i]))
	}
	c.JSON(http.StatusOK, out)
}
