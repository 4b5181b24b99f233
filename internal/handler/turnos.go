package handler

import (
	"net/http"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/middleware"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TurnosHandler struct{ svc service.TurnoService }

func NewTurnosHandler(svc service.TurnoService) *TurnosHandler { return &TurnosHandler{svc: svc} }

// CrearCaja godoc
// @Summary Da de alta una caja registradora
// @Tags cajas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCajaRequest true "Datos de la caja"
// @Success 201 {object} dto.CajaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/cajas [post]
func (h *TurnosHandler) CrearCaja(c *gin.Context) {
	var req dto.CrearCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	caja, err := h.svc.CrearCaja(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cajaToDTO(caja))
}

// ListarCajas godoc
// @Summary Lista las cajas registradoras
// @Tags cajas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CajaResponse
// @Router /v1/cajas [get]
func (h *TurnosHandler) ListarCajas(c *gin.Context) {
	cajas, err := h.svc.ListCajas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.CajaResponse, 0, len(cajas))
	for i := range cajas {
		out = append(out, cajaToDTO(&cajas[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Abrir godoc
// @Summary Abre un turno de caja con saldo inicial declarado
// @Tags turnos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirTurnoRequest true "Datos de apertura"
// @Success 201 {object} dto.TurnoResponse
// @Failure 409 {object} apierror.APIError "La caja ya tiene un turno abierto"
// @Router /v1/turnos/abrir [post]
func (h *TurnosHandler) Abrir(c *gin.Context) {
	var req dto.AbrirTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.Subject)

	turno, err := h.svc.Abrir(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, turnoToDTO(turno))
}

// Cerrar godoc
// @Summary Cierra un turno con arqueo ciego
// @Tags turnos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarTurnoRequest true "Saldo contado"
// @Success 200 {object} dto.CierreTurnoResponse
// @Failure 422 {object} apierror.APIError "Ventas abiertas pendientes"
// @Router /v1/turnos/cerrar [post]
func (h *TurnosHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detalle godoc
// @Summary Obtiene un turno. El saldo esperado solo se expone cerrado.
// @Tags turnos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del turno"
// @Success 200 {object} dto.TurnoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/turnos/{id} [get]
func (h *TurnosHandler) Detalle(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	turno, err := h.svc.Detalle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, turnoToDTO(turno))
}

// Listar godoc
// @Summary Lista turnos paginados, más recientes primero
// @Tags turnos
// @Produce json
// @Security BearerAuth
// @Param page query int false "Página"
// @Param limit query int false "Tamaño de página"
// @Success 200 {array} dto.TurnoResponse
// @Router /v1/turnos [get]
func (h *TurnosHandler) Listar(c *gin.Context) {
	page, limit := pagination(c)
	turnos, total, err := h.svc.ListTurnos(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.TurnoResponse, 0, len(turnos))
	for i := range turnos {
		out = append(out, turnoToDTO(&turnos[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "total": total, "page": page, "limit": limit})
}

// SaldoEsperado godoc
// @Summary Saldo esperado en curso de un turno abierto (solo supervisión)
// @Tags turnos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del turno"
// @Success 200 {object} map[string]string
// @Router /v1/turnos/{id}/saldo-esperado [get]
func (h *TurnosHandler) SaldoEsperado(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	saldo, err := h.svc.SaldoEsperado(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"turno_id": id.String(), "saldo_esperado": saldo})
}

// RegistrarMovimiento godoc
// @Summary Registra un ingreso o egreso manual en el turno
// @Tags turnos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimientoManualRequest true "Movimiento"
// @Success 201 {object} dto.MovimientoCajaResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/turnos/movimientos [post]
func (h *TurnosHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	mov, err := h.svc.RegistrarMovimientoManual(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, movimientoCajaToDTO(mov))
}

// ListarMovimientos godoc
// @Summary Lista los movimientos de caja de un turno
// @Tags turnos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del turno"
// @Success 200 {array} dto.MovimientoCajaResponse
// @Router /v1/turnos/{id}/movimientos [get]
func (h *TurnosHandler) ListarMovimientos(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	movs, err := h.svc.ListMovimientos(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.MovimientoCajaResponse, 0, len(movs))
	for i := range movs {
		out = append(out, movimientoCajaToDTO(&movs[i]))
	}
	c.JSON(http.StatusOK, out)
}
