package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearIngredienteRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=2"`
	CategoriaID *string         `json:"categoria_id" validate:"omitempty,uuid"`
	Unidad      string          `json:"unidad"       validate:"required"`
	StockMinimo decimal.Decimal `json:"stock_minimo" validate:"min=0"`
}

type MovimientoStockRequest struct {
	IngredienteID string          `json:"ingrediente_id" validate:"required,uuid"`
	Tipo          string          `json:"tipo"           validate:"required,oneof=compra venta ajuste merma desperdicio receta"`
	Delta         decimal.Decimal `json:"delta"          validate:"required"`
	ReferenciaID  *string         `json:"referencia_id"  validate:"omitempty,uuid"`
	Motivo        *string         `json:"motivo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type IngredienteResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Unidad      string          `json:"unidad"`
	StockActual decimal.Decimal `json:"stock_actual"`
	StockMinimo decimal.Decimal `json:"stock_minimo"`
	Activo      bool            `json:"activo"`
}

type MovimientoStockResponse struct {
	ID            string          `json:"id"`
	IngredienteID string          `json:"ingrediente_id"`
	Ingrediente   string          `json:"ingrediente"`
	Tipo          string          `json:"tipo"`
	Delta         decimal.Decimal `json:"delta"`
	Motivo        *string         `json:"motivo,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

type AlertaStockResponse struct {
	IngredienteID string          `json:"ingrediente_id"`
	Nombre        string          `json:"nombre"`
	StockActual   decimal.Decimal `json:"stock_actual"`
	StockMinimo   decimal.Decimal `json:"stock_minimo"`
	Unidad        string          `json:"unidad"`
}

// ConsistenciaResponse compares the cached stock against a full ledger
// replay for one ingredient.
type ConsistenciaResponse struct {
	IngredienteID string          `json:"ingrediente_id"`
	StockCache    decimal.Decimal `json:"stock_cache"`
	StockLedger   decimal.Decimal `json:"stock_ledger"`
	Consistente   bool            `json:"consistente"`
}
