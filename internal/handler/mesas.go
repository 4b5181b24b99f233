package handler

import (
	"net/http"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/service"

	"github.com/gin-gonic/gin"
)

type MesasHandler struct{ svc service.MesaService }

func NewMesasHandler(svc service.MesaService) *MesasHandler { return &MesasHandler{svc: svc} }

// Crear godoc
// @Summary Da de alta una mesa en una sala
// @Tags mesas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearMesaRequest true "Mesa"
// @Success 201 {object} dto.MesaResponse
// @Router /v1/mesas [post]
func (h *MesasHandler) Crear(c *gin.Context) {
	var req dto.CrearMesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	mesa, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mesaToDTO(mesa))
}

// Listar godoc
// @Summary Lista las mesas
// @Tags mesas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MesaResponse
// @Router /v1/mesas [get]
func (h *MesasHandler) Listar(c *gin.Context) {
	mesas, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.MesaResponse, 0, len(mesas))
	for i := range mesas {
		out = append(out, mesaToDTO(&mesas[i]))
	}
	c.JSON(http.StatusOK, out)
}

// AsignarCamarero godoc
// @Summary Asigna un camarero a una mesa
// @Tags mesas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la mesa"
// @Param camarero_id path string true "ID del camarero"
// @Success 200 {object} dto.MesaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/mesas/{id}/camarero/{camarero_id} [put]
func (h *MesasHandler) AsignarCamarero(c *gin.Context) {
	mesaID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	camareroID, ok := parseUUIDParam(c, "camarero_id")
	if !ok {
		return
	}
	mesa, err := h.svc.AsignarCamarero(c.Request.Context(), mesaID, camareroID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mesaToDTO(mesa))
}
