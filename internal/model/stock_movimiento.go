package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockTipo: "compra" | "venta" | "ajuste" | "merma" | "desperdicio" | "receta"
type StockTipo string

const (
	StockCompra      StockTipo = "compra"
	StockVenta       StockTipo = "venta"
	StockAjuste      StockTipo = "ajuste"
	StockMerma       StockTipo = "merma"
	StockDesperdicio StockTipo = "desperdicio"
	StockReceta      StockTipo = "receta"
)

// StockMovimiento is an immutable entry in the ingredient ledger.
// Delta is signed: negative for consumption, positive for restocking
// and for the compensating entries written when a closed venta is
// reversed. Entries are never updated or deleted.
type StockMovimiento struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IngredienteID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo          StockTipo       `gorm:"type:varchar(12);not null"`
	Delta         decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	// ReferenciaID links to the originating venta or gasto, if any.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	Motivo       *string
	CreatedAt    time.Time `gorm:"index"`

	Ingrediente *Ingrediente `gorm:"foreignKey:IngredienteID"`
}

func (StockMovimiento) TableName() string { return "stock_movimientos" }
