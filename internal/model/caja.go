package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caja is a physical register. At most one turno is abierto per caja;
// the database enforces it with a partial unique index and the service
// serializes opens with a row lock on the caja.
type Caja struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Caja) TableName() string { return "cajas" }

// TurnoEstado: "abierto" | "cerrado"
type TurnoEstado string

const (
	TurnoAbierto TurnoEstado = "abierto"
	TurnoCerrado TurnoEstado = "cerrado"
)

// Turno is a cash session on a caja. SaldoEsperado, SaldoFinal and
// Desvio are written once, at close; ArqueoCiego means the cashier
// counted before seeing the expected balance.
type Turno struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CajaID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	UsuarioID     uuid.UUID        `gorm:"type:uuid;not null"`
	Estado        TurnoEstado      `gorm:"type:varchar(10);not null;default:'abierto'"`
	SaldoInicial  decimal.Decimal  `gorm:"type:decimal(14,2);not null;default:0"`
	SaldoEsperado *decimal.Decimal `gorm:"type:decimal(14,2)"`
	SaldoFinal    *decimal.Decimal `gorm:"type:decimal(14,2)"`
	Desvio        *decimal.Decimal `gorm:"type:decimal(14,2)"`
	ArqueoCiego   bool             `gorm:"not null;default:true"`
	Observaciones *string
	AbiertoAt     time.Time  `gorm:"not null"`
	CerradoAt     *time.Time `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Caja        *Caja            `gorm:"foreignKey:CajaID"`
	Movimientos []MovimientoCaja `gorm:"foreignKey:TurnoID"`
}

func (Turno) TableName() string { return "turnos" }

// MovimientoTipo: "ingreso" | "egreso"
type MovimientoTipo string

const (
	MovimientoIngreso MovimientoTipo = "ingreso"
	MovimientoEgreso  MovimientoTipo = "egreso"
)

// MovimientoOrigen: "venta" | "gasto" | "manual"
type MovimientoOrigen string

const (
	OrigenVenta  MovimientoOrigen = "venta"
	OrigenGasto  MovimientoOrigen = "gasto"
	OrigenManual MovimientoOrigen = "manual"
)

// MovimientoCaja is an immutable cash ledger entry. Monto is always
// positive; direction lives in Tipo. Reversals append a compensating
// entry instead of mutating the original.
type MovimientoCaja struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TurnoID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Tipo        MovimientoTipo   `gorm:"type:varchar(10);not null"`
	Origen      MovimientoOrigen `gorm:"type:varchar(10);not null"`
	MedioPago   MedioPago        `gorm:"type:varchar(20);not null"`
	Monto       decimal.Decimal  `gorm:"type:decimal(14,2);not null"`
	Descripcion string           `gorm:"not null"`
	// ReferenciaID links to the originating venta or gasto, if any.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time  `gorm:"index"`
}

func (MovimientoCaja) TableName() string { return "movimientos_caja" }
