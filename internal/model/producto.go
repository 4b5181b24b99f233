package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a sellable catalog entry. Stock is never tracked on the
// producto itself: consumption flows through its Receta into the
// ingredient ledger. ControlaStock makes insufficient ingredient stock
// a hard failure at sale time instead of a warning.
type Producto struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string          `gorm:"index;not null"`
	SKU           string          `gorm:"uniqueIndex;not null;column:sku"`
	CategoriaID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	PrecioLista   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ControlaStock bool            `gorm:"not null;default:true"`
	Favorito      bool            `gorm:"not null;default:false"`
	Activo        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Categoria *CategoriaProducto `gorm:"foreignKey:CategoriaID"`
	Receta    *Receta            `gorm:"foreignKey:ProductoID"`
}

func (Producto) TableName() string { return "productos" }

// ListaPrecio groups alternative prices; exactly one list is activa at
// a time and supplies the default unit price at sale time.
type ListaPrecio struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Activa    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []ListaPrecioItem `gorm:"foreignKey:ListaID"`
}

func (ListaPrecio) TableName() string { return "listas_precio" }

type ListaPrecioItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ListaID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Precio     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ListaPrecioItem) TableName() string { return "listas_precio_items" }
