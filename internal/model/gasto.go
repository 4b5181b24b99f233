package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Proveedor is a supplier referenced by gastos.
type Proveedor struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre            string    `gorm:"index;not null"`
	CategoriaID       *uuid.UUID `gorm:"type:uuid"`
	Telefono          *string
	Email             *string
	CtaCorrienteSaldo decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Proveedor) TableName() string { return "proveedores" }

// Gasto is a purchase/expense. Recording one appends an egreso to the
// cash ledger of the open turno and, when ActualizaStock, a compra
// movimiento per purchased ingredient — all in one transaction.
type Gasto struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID *uuid.UUID `gorm:"type:uuid"`
	CategoriaID *uuid.UUID `gorm:"type:uuid"`
	TurnoID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Fecha       time.Time  `gorm:"not null"`
	VenceAt     *time.Time
	// Items holds the purchased ingredient lines as JSON
	// [{"ingrediente_id": "...", "cantidad": "2.5"}, ...].
	Items          JSONB
	ActualizaStock bool `gorm:"not null;default:true"`
	MedioPago      MedioPago `gorm:"type:varchar(20);not null;default:'efectivo'"`
	Descripcion    *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (Gasto) TableName() string { return "gastos" }
