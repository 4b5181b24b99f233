package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receta maps one producto to the ingredients it consumes per unit sold.
type Receta struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []RecetaItem `gorm:"foreignKey:RecetaID"`
}

func (Receta) TableName() string { return "recetas" }

// RecetaItem consumes Cantidad of an ingredient per unit of product.
// When SubIngredienteID is set the consumption lands on the
// sub-ingredient's parent, scaled by its conversion factor.
type RecetaItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecetaID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredienteID    uuid.UUID       `gorm:"type:uuid;not null"`
	SubIngredienteID *uuid.UUID      `gorm:"type:uuid"`
	Cantidad         decimal.Decimal `gorm:"type:decimal(12,4);not null"`

	Ingrediente    *Ingrediente    `gorm:"foreignKey:IngredienteID"`
	SubIngrediente *SubIngrediente `gorm:"foreignKey:SubIngredienteID"`
}

func (RecetaItem) TableName() string { return "receta_items" }
