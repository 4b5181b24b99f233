package handler

import (
	"net/http"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/service"

	"github.com/gin-gonic/gin"
)

type GastosHandler struct{ svc service.GastoService }

func NewGastosHandler(svc service.GastoService) *GastosHandler { return &GastosHandler{svc: svc} }

// Crear godoc
// @Summary Registra un gasto: egreso de caja y, opcionalmente, compra de stock
// @Tags gastos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearGastoRequest true "Gasto"
// @Success 201 {object} dto.GastoResponse
// @Failure 422 {object} apierror.APIError "El turno no está abierto"
// @Router /v1/gastos [post]
func (h *GastosHandler) Crear(c *gin.Context) {
	var req dto.CrearGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	gasto, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gastoToDTO(gasto))
}

// Detalle godoc
// @Summary Obtiene un gasto
// @Tags gastos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del gasto"
// @Success 200 {object} dto.GastoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/gastos/{id} [get]
func (h *GastosHandler) Detalle(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	gasto, err := h.svc.Detalle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gastoToDTO(gasto))
}

// ListarPorTurno godoc
// @Summary Lista los gastos registrados en un turno
// @Tags gastos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del turno"
// @Success 200 {array} dto.GastoResponse
// @Router /v1/turnos/{id}/gastos [get]
func (h *GastosHandler) ListarPorTurno(c *gin.Context) {
	turnoID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	gastos, err := h.svc.ListPorTurno(c.Request.Context(), turnoID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.GastoResponse, 0, len(gastos))
	for i := range gastos {
		out = append(out, gastoToDTO(&gastos[i]))
	}
	c.JSON(http.StatusOK, out)
}

// CrearProveedor godoc
// @Summary Da de alta un proveedor
// @Tags proveedores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearProveedorRequest true "Proveedor"
// @Success 201 {object} map[string]string
// @Router /v1/proveedores [post]
func (h *GastosHandler) CrearProveedor(c *gin.Context) {
	var req dto.CrearProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	prov, err := h.svc.CrearProveedor(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": prov.ID.String(), "nombre": prov.Nombre})
}

// ListarProveedores godoc
// @Summary Lista proveedores
// @Tags proveedores
// @Produce json
// @Security BearerAuth
// @Success 200 {array} map[string]string
// @Router /v1/proveedores [get]
func (h *GastosHandler) ListarProveedores(c *gin.Context) {
	proveedores, err := h.svc.ListProveedores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(proveedores))
	for _, p := range proveedores {
		item := gin.H{"id": p.ID.String(), "nombre": p.Nombre}
		if p.Telefono != nil {
			item["telefono"] = *p.Telefono
		}
		if p.Email != nil {
			item["email"] = *p.Email
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, out)
}
