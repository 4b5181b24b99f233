package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingrediente is raw stock consumed through recipes. StockActual is a
// derived cache: the signed sum of every StockMovimiento delta for the
// ingredient. It is only ever written inside the same transaction that
// appends the movimiento (see StockRepository.AplicarDeltaTx).
type Ingrediente struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string          `gorm:"index;not null"`
	CategoriaID *uuid.UUID      `gorm:"type:uuid"`
	StockActual decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	StockMinimo decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	// Unidad is the base unit all movimientos are expressed in (g, ml, unidad).
	Unidad    string `gorm:"type:varchar(20);not null;default:'unidad'"`
	Activo    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	SubIngredientes []SubIngrediente `gorm:"foreignKey:PadreID"`
}

func (Ingrediente) TableName() string { return "ingredientes" }

// SubIngrediente names a sub-unit of a base ingredient and converts it
// via a multiplicative factor (e.g. "shot de espresso" → 18 g de café).
type SubIngrediente struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PadreID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Nombre    string          `gorm:"not null"`
	Factor    decimal.Decimal `gorm:"type:decimal(12,4);not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Padre *Ingrediente `gorm:"foreignKey:PadreID"`
}

func (SubIngrediente) TableName() string { return "subingredientes" }
