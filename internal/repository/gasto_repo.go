package repository

import (
	"context"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GastoRepository interface {
	DB() *gorm.DB
	CreateTx(tx *gorm.DB, g *model.Gasto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error)
	ListPorTurno(ctx context.Context, turnoID uuid.UUID) ([]model.Gasto, error)

	CreateProveedor(ctx context.Context, p *model.Proveedor) error
	FindProveedorByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	ListProveedores(ctx context.Context) ([]model.Proveedor, error)
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) DB() *gorm.DB { return r.db }

func (r *gastoRepo) CreateTx(tx *gorm.DB, g *model.Gasto) error {
	return tx.Create(g).Error
}

func (r *gastoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error) {
	var g model.Gasto
	err := r.db.WithContext(ctx).Preload("Proveedor").First(&g, "id = ?", id).Error
	return &g, err
}

func (r *gastoRepo) ListPorTurno(ctx context.Context, turnoID uuid.UUID) ([]model.Gasto, error) {
	var gastos []model.Gasto
	err := r.db.WithContext(ctx).Where("turno_id = ?", turnoID).Order("fecha ASC").Find(&gastos).Error
	return gastos, err
}

func (r *gastoRepo) CreateProveedor(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *gastoRepo) FindProveedorByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *gastoRepo) ListProveedores(ctx context.Context) ([]model.Proveedor, error) {
	var proveedores []model.Proveedor
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&proveedores).Error
	return proveedores, err
}
