package dto

import "github.com/shopspring/decimal"

type CrearClienteRequest struct {
	Nombre       string           `json:"nombre"        validate:"required,min=2"`
	Email        *string          `json:"email"         validate:"omitempty,email"`
	Telefono     *string          `json:"telefono"`
	DescuentoPct *decimal.Decimal `json:"descuento_pct" validate:"omitempty,min=0,max=100"`
}

type ActualizarClienteRequest struct {
	Nombre       *string          `json:"nombre"        validate:"omitempty,min=2"`
	Email        *string          `json:"email"         validate:"omitempty,email"`
	Telefono     *string          `json:"telefono"`
	DescuentoPct *decimal.Decimal `json:"descuento_pct" validate:"omitempty,min=0,max=100"`
}

type ClienteResponse struct {
	ID                 string           `json:"id"`
	Nombre             string           `json:"nombre"`
	Email              *string          `json:"email,omitempty"`
	Telefono           *string          `json:"telefono,omitempty"`
	DescuentoPct       *decimal.Decimal `json:"descuento_pct,omitempty"`
	CtaCorrienteSaldo  decimal.Decimal  `json:"cta_corriente_saldo"`
	Activo             bool             `json:"activo"`
}
