package model

import (
	"time"

	"github.com/google/uuid"
)

// Mesa is a physical table, referenced by mesa-type ventas.
type Mesa struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Sala       string    `gorm:"not null"`
	Numero     string    `gorm:"type:varchar(10);not null"`
	CamareroID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Mesa) TableName() string { return "mesas" }
