package model

import (
	"time"

	"github.com/google/uuid"
)

// Rol: "admin" | "mozo" | "cocina" | "caja"
type Rol string

const (
	RolAdmin  Rol = "admin"
	RolMozo   Rol = "mozo"
	RolCocina Rol = "cocina"
	RolCaja   Rol = "caja"
)

// Usuario is an operator. The core trusts the authenticated identity
// passed in by the HTTP layer; PinHash supports the fast keypad login
// used at the till.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Rol          Rol       `gorm:"type:varchar(10);not null"`
	PasswordHash string    `gorm:"not null"`
	PinHash      *string
	Activo       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// CajasAsignadas restricts which tills the operator may open.
	CajasAsignadas []Caja `gorm:"many2many:usuario_caja;"`
}

func (Usuario) TableName() string { return "usuarios" }
