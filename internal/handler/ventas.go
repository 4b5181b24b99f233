package handler

import (
	"net/http"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/middleware"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// Abrir godoc
// @Summary Abre una venta (ticket) de mesa, mostrador u online
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirVentaRequest true "Datos de apertura"
// @Success 201 {object} dto.VentaResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/ventas [post]
func (h *VentasHandler) Abrir(c *gin.Context) {
	var req dto.AbrirVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	var mozoID *uuid.UUID
	if uid, err := uuid.Parse(claims.Subject); err == nil {
		mozoID = &uid
	}
	venta, err := h.svc.Abrir(c.Request.Context(), mozoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ventaToDTO(venta))
}

// Detalle godoc
// @Summary Obtiene una venta con items, pagos y descuentos
// @Tags ventas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la venta"
// @Success 200 {object} dto.VentaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/ventas/{id} [get]
func (h *VentasHandler) Detalle(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	venta, err := h.svc.Detalle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ventaToDTO(venta))
}

// Listar godoc
// @Summary Lista ventas filtrando por estado, turno y fecha
// @Tags ventas
// @Produce json
// @Security BearerAuth
// @Param estado query string false "abierta | cerrada | anulada"
// @Param turno_id query string false "ID de turno"
// @Param fecha query string false "YYYY-MM-DD, vacío = hoy"
// @Param page query int false "Página"
// @Param limit query int false "Tamaño de página"
// @Success 200 {object} dto.VentaListResponse
// @Router /v1/ventas [get]
func (h *VentasHandler) Listar(c *gin.Context) {
	page, limit := pagination(c)
	filter := repository.VentaFilter{
		Estado: model.VentaEstado(c.Query("estado")),
		Fecha:  c.Query("fecha"),
		Page:   page,
		Limit:  limit,
	}
	if raw := c.Query("turno_id"); raw != "" {
		if turnoID, err := uuid.Parse(raw); err == nil {
			filter.TurnoID = &turnoID
		}
	}
	ventas, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := dto.VentaListResponse{
		Data:  make([]dto.VentaResponse, 0, len(ventas)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for i := range ventas {
		resp.Data = append(resp.Data, ventaToDTO(&ventas[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarItem godoc
// @Summary Agrega una línea a una venta abierta y recalcula totales
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la venta"
// @Param body body dto.AgregarItemRequest true "Línea"
// @Success 200 {object} dto.VentaResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/ventas/{id}/items [post]
func (h *VentasHandler) AgregarItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	venta, err := h.svc.AgregarItem(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ventaToDTO(venta))
}

// EliminarItem godoc
// @Summary Quita una línea de una venta abierta
// @Tags ventas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la venta"
// @Param item_id path string true "ID del item"
// @Success 200 {object} dto.VentaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/ventas/{id}/items/{item_id} [delete]
func (h *VentasHandler) EliminarItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		return
	}
	venta, err := h.svc.EliminarItem(c.Request.Context(), id, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ventaToDTO(venta))
}

// AplicarDescuento godoc
// @Summary Aplica un descuento fijo o porcentual a una venta abierta
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la venta"
// @Param body body dto.DescuentoRequest true "Descuento"
// @Success 200 {object} dto.VentaResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/ventas/{id}/descuentos [post]
func (h *VentasHandler) AplicarDescuento(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.DescuentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	venta, err := h.svc.AplicarDescuento(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ventaToDTO(venta))
}

// RegistrarPago godoc
// @Summary Registra un pago parcial o total sobre una venta abierta
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la venta"
// @Param body body dto.PagoRequest true "Pago"
// @Success 200 {object} dto.VentaResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/ventas/{id}/pagos [post]
func (h *VentasHandler) RegistrarPago(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.PagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	venta, err := h.svc.RegistrarPago(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ventaToDTO(venta))
}

// Cerrar godoc
// @Summary Cierra una venta: congela totales, exige pago exacto y descuenta stock
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la venta"
// @Param body body dto.CerrarVentaRequest true "Datos de cierre"
// @Success 200 {object} dto.VentaResponse
// @Failure 422 {object} apierror.APIError "Pago no coincide o stock insuficiente"
// @Router /v1/ventas/{id}/cerrar [post]
func (h *VentasHandler) Cerrar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CerrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	venta, err := h.svc.Cerrar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ventaToDTO(venta))
}

// Anular godoc
// @Summary Anula una venta; si estaba cerrada revierte stock y caja con contraasientos
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la venta"
// @Param body body dto.AnularVentaRequest true "Motivo"
// @Success 200 {object} dto.VentaResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/ventas/{id}/anular [post]
func (h *VentasHandler) Anular(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AnularVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	venta, err := h.svc.Anular(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ventaToDTO(venta))
}
