package repository

import (
	"context"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoriaRepository interface {
	Create(ctx context.Context, c *model.CategoriaProducto) error
	Update(ctx context.Context, c *model.CategoriaProducto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CategoriaProducto, error)
	// ListAll returns the whole arena; the service traverses it in
	// memory instead of issuing recursive queries.
	ListAll(ctx context.Context) ([]model.CategoriaProducto, error)
}

type categoriaRepo struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository { return &categoriaRepo{db: db} }

func (r *categoriaRepo) Create(ctx context.Context, c *model.CategoriaProducto) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepo) Update(ctx context.Context, c *model.CategoriaProducto) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoriaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CategoriaProducto, error) {
	var c model.CategoriaProducto
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *categoriaRepo) ListAll(ctx context.Context) ([]model.CategoriaProducto, error) {
	var categorias []model.CategoriaProducto
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&categorias).Error
	return categorias, err
}
