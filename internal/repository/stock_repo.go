package repository

import (
	"context"
	"errors"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStockInsuficiente is returned by AplicarDeltaTx when a guarded
// delta would drive the cached stock below zero. The service layer
// translates it into a poserror.InsufficientStockError with context.
var ErrStockInsuficiente = errors.New("stock insuficiente")

// MovimientoStockFilter narrows ledger listings.
type MovimientoStockFilter struct {
	IngredienteID *uuid.UUID
	Tipo          model.StockTipo
	Page          int
	Limit         int
}

// StockRepository owns ingredientes and their append-only ledger. The
// cached stock_actual is only ever touched through AplicarDeltaTx, in
// the same transaction that appends the movimiento.
type StockRepository interface {
	DB() *gorm.DB

	CreateIngrediente(ctx context.Context, i *model.Ingrediente) error
	UpdateIngrediente(ctx context.Context, i *model.Ingrediente) error
	FindIngrediente(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error)
	FindIngredienteTx(tx *gorm.DB, id uuid.UUID) (*model.Ingrediente, error)
	ListIngredientes(ctx context.Context) ([]model.Ingrediente, error)
	// ListBajoMinimo returns active ingredients whose cached stock sits
	// at or below their minimum.
	ListBajoMinimo(ctx context.Context) ([]model.Ingrediente, error)

	CreateMovimientoTx(tx *gorm.DB, m *model.StockMovimiento) error
	// AplicarDeltaTx adds delta to the cached stock atomically. With
	// bloquearNegativo the update only applies while the result stays
	// ≥ 0; otherwise ErrStockInsuficiente is returned and nothing
	// changes.
	AplicarDeltaTx(tx *gorm.DB, ingredienteID uuid.UUID, delta decimal.Decimal, bloquearNegativo bool) error
	// SumDeltas replays the ledger: Σ delta for one ingredient.
	SumDeltas(ctx context.Context, ingredienteID uuid.UUID) (decimal.Decimal, error)
	ListMovimientos(ctx context.Context, filter MovimientoStockFilter) ([]model.StockMovimiento, int64, error)
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) DB() *gorm.DB { return r.db }

func (r *stockRepo) CreateIngrediente(ctx context.Context, i *model.Ingrediente) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *stockRepo) UpdateIngrediente(ctx context.Context, i *model.Ingrediente) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *stockRepo) FindIngrediente(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	var i model.Ingrediente
	err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error
	return &i, err
}

func (r *stockRepo) FindIngredienteTx(tx *gorm.DB, id uuid.UUID) (*model.Ingrediente, error) {
	var i model.Ingrediente
	err := tx.First(&i, "id = ?", id).Error
	return &i, err
}

func (r *stockRepo) ListIngredientes(ctx context.Context) ([]model.Ingrediente, error) {
	var ingredientes []model.Ingrediente
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&ingredientes).Error
	return ingredientes, err
}

func (r *stockRepo) ListBajoMinimo(ctx context.Context) ([]model.Ingrediente, error) {
	var ingredientes []model.Ingrediente
	err := r.db.WithContext(ctx).
		Where("activo = true AND stock_actual <= stock_minimo").
		Order("nombre ASC").
		Find(&ingredientes).Error
	return ingredientes, err
}

func (r *stockRepo) CreateMovimientoTx(tx *gorm.DB, m *model.StockMovimiento) error {
	return tx.Create(m).Error
}

func (r *stockRepo) AplicarDeltaTx(tx *gorm.DB, ingredienteID uuid.UUID, delta decimal.Decimal, bloquearNegativo bool) error {
	// Lock the row first so the guard below reads a transaction-fresh
	// value under concurrency.
	var ing model.Ingrediente
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ing, "id = ?", ingredienteID).Error; err != nil {
		return err
	}
	nuevo := ing.StockActual.Add(delta)
	if bloquearNegativo && nuevo.IsNegative() {
		return ErrStockInsuficiente
	}
	return tx.Model(&model.Ingrediente{}).Where("id = ?", ingredienteID).
		UpdateColumn("stock_actual", gorm.Expr("stock_actual + ?", delta)).Error
}

func (r *stockRepo) SumDeltas(ctx context.Context, ingredienteID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.StockMovimiento{}).
		Select("COALESCE(SUM(delta), 0)").
		Where("ingrediente_id = ?", ingredienteID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *stockRepo) ListMovimientos(ctx context.Context, filter MovimientoStockFilter) ([]model.StockMovimiento, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockMovimiento{}).Preload("Ingrediente")
	if filter.IngredienteID != nil {
		q = q.Where("ingrediente_id = ?", *filter.IngredienteID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var movimientos []model.StockMovimiento
	err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&movimientos).Error
	return movimientos, total, err
}
