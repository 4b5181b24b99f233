package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCajaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2"`
}

type AbrirTurnoRequest struct {
	CajaID       string          `json:"caja_id"       validate:"required,uuid"`
	SaldoInicial decimal.Decimal `json:"saldo_inicial" validate:"min=0"`
	ArqueoCiego  bool            `json:"arqueo_ciego"`
}

type CerrarTurnoRequest struct {
	TurnoID       string          `json:"turno_id"      validate:"required,uuid"`
	SaldoContado  decimal.Decimal `json:"saldo_contado" validate:"min=0"`
	Observaciones *string         `json:"observaciones"`
}

type MovimientoManualRequest struct {
	TurnoID     string          `json:"turno_id"    validate:"required,uuid"`
	Tipo        string          `json:"tipo"        validate:"required,oneof=ingreso egreso"`
	MedioPago   string          `json:"medio_pago"  validate:"required,oneof=efectivo mp_qr mp_link debito credito transferencia otros"`
	Monto       decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	Descripcion string          `json:"descripcion" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TurnoResponse struct {
	ID            string           `json:"id"`
	CajaID        string           `json:"caja_id"`
	UsuarioID     string           `json:"usuario_id"`
	Estado        string           `json:"estado"`
	SaldoInicial  decimal.Decimal  `json:"saldo_inicial"`
	SaldoEsperado *decimal.Decimal `json:"saldo_esperado,omitempty"`
	SaldoFinal    *decimal.Decimal `json:"saldo_final,omitempty"`
	Desvio        *decimal.Decimal `json:"desvio,omitempty"`
	ArqueoCiego   bool             `json:"arqueo_ciego"`
	Observaciones *string          `json:"observaciones,omitempty"`
	AbiertoAt     string           `json:"abierto_at"`
	CerradoAt     *string          `json:"cerrado_at,omitempty"`
}

type CierreTurnoResponse struct {
	TurnoID       string          `json:"turno_id"`
	SaldoEsperado decimal.Decimal `json:"saldo_esperado"`
	SaldoContado  decimal.Decimal `json:"saldo_contado"`
	Desvio        decimal.Decimal `json:"desvio"`
	Estado        string          `json:"estado"`
}

type MovimientoCajaResponse struct {
	ID          string          `json:"id"`
	Tipo        string          `json:"tipo"`
	Origen      string          `json:"origen"`
	MedioPago   string          `json:"medio_pago"`
	Monto       decimal.Decimal `json:"monto"`
	Descripcion string          `json:"descripcion"`
	CreatedAt   string          `json:"created_at"`
}

type CajaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}
