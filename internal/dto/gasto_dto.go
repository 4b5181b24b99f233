package dto

import "github.com/shopspring/decimal"

// GastoItemRequest is one purchased ingredient line. Cantidad is in the
// ingredient's base unit and feeds a compra movimiento when the gasto
// updates stock.
type GastoItemRequest struct {
	IngredienteID string          `json:"ingrediente_id" validate:"required,uuid"`
	Cantidad      decimal.Decimal `json:"cantidad"       validate:"required,gt=0"`
}

type CrearGastoRequest struct {
	TurnoID        string             `json:"turno_id"        validate:"required,uuid"`
	ProveedorID    *string            `json:"proveedor_id"    validate:"omitempty,uuid"`
	CategoriaID    *string            `json:"categoria_id"    validate:"omitempty,uuid"`
	Monto          decimal.Decimal    `json:"monto"           validate:"required,gt=0"`
	MedioPago      string             `json:"medio_pago"      validate:"required,oneof=efectivo mp_qr mp_link debito credito transferencia otros"`
	Descripcion    string             `json:"descripcion"     validate:"required,min=3"`
	Items          []GastoItemRequest `json:"items"           validate:"omitempty,dive"`
	ActualizaStock bool               `json:"actualiza_stock"`
}

type GastoResponse struct {
	ID          string          `json:"id"`
	TurnoID     string          `json:"turno_id"`
	Monto       decimal.Decimal `json:"monto"`
	MedioPago   string          `json:"medio_pago"`
	Descripcion *string         `json:"descripcion,omitempty"`
	Proveedor   *string         `json:"proveedor,omitempty"`
	Fecha       string          `json:"fecha"`
}

type CrearProveedorRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=2"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email" validate:"omitempty,email"`
}
