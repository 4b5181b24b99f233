package model

import (
	"time"

	"github.com/google/uuid"
)

// CategoriaProducto is one node of the self-referencing category tree.
// The tree is stored as an arena keyed by id with a nullable parent id;
// traversal is iterative over the id index (no recursive loads).
type CategoriaProducto struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string     `gorm:"uniqueIndex;not null"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CategoriaProducto) TableName() string { return "categorias_productos" }
