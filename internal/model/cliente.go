package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente is an optional reference on a venta. DescuentoPct is a
// standing percentage discount folded into the venta's discount set
// whenever totals are recomputed.
type Cliente struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre            string    `gorm:"index;not null"`
	Telefono          *string
	Email             *string
	DescuentoPct      *decimal.Decimal `gorm:"type:decimal(5,2)"`
	CtaCorrienteSaldo decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Cliente) TableName() string { return "clientes" }
