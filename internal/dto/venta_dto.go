package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirVentaRequest struct {
	Tipo      string  `json:"tipo"       validate:"required,oneof=mesa mostrador online"`
	MesaID    *string `json:"mesa_id"    validate:"omitempty,uuid"`
	ClienteID *string `json:"cliente_id" validate:"omitempty,uuid"`
	// TurnoID binds the venta to an open turno at creation (counter
	// sales); mesa ventas may leave it empty until close.
	TurnoID *string `json:"turno_id" validate:"omitempty,uuid"`
}

type AgregarItemRequest struct {
	ProductoID string          `json:"producto_id" validate:"required,uuid"`
	Cantidad   decimal.Decimal `json:"cantidad"    validate:"required,gt=0"`
	// PrecioUnitario overrides the active price list when set.
	PrecioUnitario *decimal.Decimal `json:"precio_unitario" validate:"omitempty,min=0"`
	Modificadores  json.RawMessage  `json:"modificadores"`
}

type DescuentoRequest struct {
	Tipo   string          `json:"tipo"   validate:"required,oneof=fijo porcentual"`
	Valor  decimal.Decimal `json:"valor"  validate:"required,gt=0"`
	Motivo *string         `json:"motivo"`
}

type PagoRequest struct {
	Medio      string          `json:"medio"      validate:"required,oneof=efectivo mp_qr mp_link debito credito transferencia otros"`
	Monto      decimal.Decimal `json:"monto"      validate:"required,gt=0"`
	Referencia *string         `json:"referencia"`
}

type CerrarVentaRequest struct {
	CajaID  string          `json:"caja_id"  validate:"required,uuid"`
	TurnoID string          `json:"turno_id" validate:"required,uuid"`
	Propina decimal.Decimal `json:"propina"  validate:"min=0"`
	// ClienteEmail triggers an e-mailed ticket after close.
	ClienteEmail *string `json:"cliente_email" validate:"omitempty,email"`
}

type AnularVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ID             string          `json:"id"`
	Producto       string          `json:"producto"`
	ProductoID     string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Modificadores  json.RawMessage `json:"modificadores,omitempty"`
}

type PagoResponse struct {
	Medio      string          `json:"medio"`
	Monto      decimal.Decimal `json:"monto"`
	Referencia *string         `json:"referencia,omitempty"`
}

type DescuentoResponse struct {
	Tipo   string          `json:"tipo"`
	Valor  decimal.Decimal `json:"valor"`
	Motivo *string         `json:"motivo,omitempty"`
}

type VentaResponse struct {
	ID             string              `json:"id"`
	Tipo           string              `json:"tipo"`
	Estado         string              `json:"estado"`
	MesaID         *string             `json:"mesa_id,omitempty"`
	ClienteID      *string             `json:"cliente_id,omitempty"`
	TurnoID        *string             `json:"turno_id,omitempty"`
	Items          []ItemVentaResponse `json:"items"`
	Pagos          []PagoResponse      `json:"pagos"`
	Descuentos     []DescuentoResponse `json:"descuentos"`
	TotalBruto     decimal.Decimal     `json:"total_bruto"`
	TotalDescuento decimal.Decimal     `json:"total_descuento"`
	TotalNeto      decimal.Decimal     `json:"total_neto"`
	Propina        decimal.Decimal     `json:"propina"`
	TotalPagado    decimal.Decimal     `json:"total_pagado"`
	CreatedAt      string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
