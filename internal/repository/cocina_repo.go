package repository

import (
	"context"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CocinaRepository interface {
	Create(ctx context.Context, p *model.PedidoCocina) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PedidoCocina, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado model.PedidoEstado) error
	ListPorEstado(ctx context.Context, estado model.PedidoEstado) ([]model.PedidoCocina, error)
}

type cocinaRepo struct{ db *gorm.DB }

func NewCocinaRepository(db *gorm.DB) CocinaRepository { return &cocinaRepo{db: db} }

func (r *cocinaRepo) Create(ctx context.Context, p *model.PedidoCocina) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *cocinaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PedidoCocina, error) {
	var p model.PedidoCocina
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *cocinaRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado model.PedidoEstado) error {
	return r.db.WithContext(ctx).Model(&model.PedidoCocina{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *cocinaRepo) ListPorEstado(ctx context.Context, estado model.PedidoEstado) ([]model.PedidoCocina, error) {
	var pedidos []model.PedidoCocina
	err := r.db.WithContext(ctx).Where("estado = ?", estado).Order("created_at ASC").Find(&pedidos).Error
	return pedidos, err
}
