package model

import (
	"time"

	"github.com/google/uuid"
)

// PedidoEstado: "pendiente" | "en_curso" | "listo"
type PedidoEstado string

const (
	PedidoPendiente PedidoEstado = "pendiente"
	PedidoEnCurso   PedidoEstado = "en_curso"
	PedidoListo     PedidoEstado = "listo"
)

// PedidoCocina is a kitchen ticket derived from an open venta. The
// item snapshot is frozen at dispatch time so later edits to the venta
// don't mutate what the kitchen already sees.
type PedidoCocina struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	Estado    PedidoEstado `gorm:"type:varchar(10);not null;default:'pendiente'"`
	Items     JSONB
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PedidoCocina) TableName() string { return "pedidos_cocina" }
