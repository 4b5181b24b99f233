package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VentaTipo: "mesa" | "mostrador" | "online"
type VentaTipo string

const (
	VentaMesa      VentaTipo = "mesa"
	VentaMostrador VentaTipo = "mostrador"
	VentaOnline    VentaTipo = "online"
)

// VentaEstado: "abierta" | "cerrada" | "anulada"
type VentaEstado string

const (
	VentaAbierta VentaEstado = "abierta"
	VentaCerrada VentaEstado = "cerrada"
	VentaAnulada VentaEstado = "anulada"
)

// MedioPago identifies how money moved. Cash is the only medio that
// lands in the physical drawer count.
type MedioPago string

const (
	MedioEfectivo      MedioPago = "efectivo"
	MedioMPQR          MedioPago = "mp_qr"
	MedioMPLink        MedioPago = "mp_link"
	MedioDebito        MedioPago = "debito"
	MedioCredito       MedioPago = "credito"
	MedioTransferencia MedioPago = "transferencia"
	MedioOtros         MedioPago = "otros"
)

// Venta is the sale aggregate. Totals are derived columns, recomputed
// from items and descuentos on every mutation while abierta and frozen
// at close. CajaID/TurnoID may bind at open (mostrador) or at close
// (mesa).
type Venta struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo            VentaTipo       `gorm:"type:varchar(10);not null;default:'mostrador'"`
	Estado          VentaEstado     `gorm:"type:varchar(10);not null;default:'abierta';index"`
	MesaID          *uuid.UUID      `gorm:"type:uuid"`
	ClienteID       *uuid.UUID      `gorm:"type:uuid"`
	MozoID          *uuid.UUID      `gorm:"type:uuid"`
	CajaID          *uuid.UUID      `gorm:"type:uuid"`
	TurnoID         *uuid.UUID      `gorm:"type:uuid;index"`
	TotalBruto      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalDescuento  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalNeto       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Propina         decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	MotivoAnulacion *string
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time

	Mesa       *Mesa       `gorm:"foreignKey:MesaID"`
	Cliente    *Cliente    `gorm:"foreignKey:ClienteID"`
	Items      []VentaItem `gorm:"foreignKey:VentaID"`
	Pagos      []Pago      `gorm:"foreignKey:VentaID"`
	Descuentos []Descuento `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem captures the unit price at the moment the line was added;
// later price-list changes never touch an existing venta.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Modificadores  JSONB
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaItem) TableName() string { return "venta_items" }

func (i VentaItem) Subtotal() decimal.Decimal {
	return i.PrecioUnitario.Mul(i.Cantidad)
}

type Pago struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Medio      MedioPago       `gorm:"type:varchar(20);not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Referencia *string
	CreatedAt  time.Time
}

func (Pago) TableName() string { return "pagos" }

// DescuentoTipo: "fijo" | "porcentual"
type DescuentoTipo string

const (
	DescuentoFijo       DescuentoTipo = "fijo"
	DescuentoPorcentual DescuentoTipo = "porcentual"
)

// Descuento applies to one venta. Percentage discounts are computed on
// the gross total before any fixed amount is subtracted.
type Descuento struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID   *uuid.UUID      `gorm:"type:uuid;index"`
	ClienteID *uuid.UUID      `gorm:"type:uuid"`
	Tipo      DescuentoTipo   `gorm:"type:varchar(10);not null"`
	Valor     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Motivo    *string
	CreatedAt time.Time
}

func (Descuento) TableName() string { return "descuentos" }
