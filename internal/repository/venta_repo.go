package repository

import (
	"context"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VentaFilter narrows listing queries.
type VentaFilter struct {
	Estado  model.VentaEstado
	TurnoID *uuid.UUID
	Fecha   string // YYYY-MM-DD, empty = today
	Page    int
	Limit   int
}

type VentaRepository interface {
	DB() *gorm.DB

	Create(ctx context.Context, v *model.Venta) error
	// FindByID preloads everything the sale engine needs to recompute
	// totals and resolve recipes: items with producto+receta, pagos,
	// descuentos and cliente.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	// FindForUpdateTx locks the venta row; concurrent mutations of the
	// same venta serialize on it.
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error)
	// FindByIDTx is FindByID bound to the running transaction, so
	// uncommitted items and pagos are visible to total recomputation.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error)

	CreateItemTx(tx *gorm.DB, item *model.VentaItem) error
	DeleteItemTx(tx *gorm.DB, ventaID, itemID uuid.UUID) error
	CreatePagoTx(tx *gorm.DB, p *model.Pago) error
	CreateDescuentoTx(tx *gorm.DB, d *model.Descuento) error
	UpdateTotalesTx(tx *gorm.DB, id uuid.UUID, bruto, descuento, neto decimal.Decimal) error
	// CerrarTx binds the venta to its caja/turno and marks it cerrada.
	CerrarTx(tx *gorm.DB, id, cajaID, turnoID uuid.UUID, propina decimal.Decimal) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.VentaEstado) error
	// AnularTx marks the venta anulada and records why.
	AnularTx(tx *gorm.DB, id uuid.UUID, motivo string) error

	CountAbiertasPorTurnoTx(tx *gorm.DB, turnoID uuid.UUID) (int64, error)
	List(ctx context.Context, filter VentaFilter) ([]model.Venta, int64, error)
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, v *model.Venta) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items.Producto.Receta.Items.Ingrediente").
		Preload("Items.Producto.Receta.Items.SubIngrediente").
		Preload("Pagos").
		Preload("Descuentos").
		Preload("Cliente").
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := tx.
		Preload("Items.Producto.Receta.Items.Ingrediente").
		Preload("Items.Producto.Receta.Items.SubIngrediente").
		Preload("Pagos").
		Preload("Descuentos").
		Preload("Cliente").
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) CreateItemTx(tx *gorm.DB, item *model.VentaItem) error {
	return tx.Create(item).Error
}

func (r *ventaRepo) DeleteItemTx(tx *gorm.DB, ventaID, itemID uuid.UUID) error {
	res := tx.Where("id = ? AND venta_id = ?", itemID, ventaID).Delete(&model.VentaItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ventaRepo) CreatePagoTx(tx *gorm.DB, p *model.Pago) error {
	return tx.Create(p).Error
}

func (r *ventaRepo) CreateDescuentoTx(tx *gorm.DB, d *model.Descuento) error {
	return tx.Create(d).Error
}

func (r *ventaRepo) UpdateTotalesTx(tx *gorm.DB, id uuid.UUID, bruto, descuento, neto decimal.Decimal) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total_bruto":     bruto,
		"total_descuento": descuento,
		"total_neto":      neto,
	}).Error
}

func (r *ventaRepo) CerrarTx(tx *gorm.DB, id, cajaID, turnoID uuid.UUID, propina decimal.Decimal) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Updates(map[string]interface{}{
		"estado":   model.VentaCerrada,
		"caja_id":  cajaID,
		"turno_id": turnoID,
		"propina":  propina,
	}).Error
}

func (r *ventaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.VentaEstado) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *ventaRepo) AnularTx(tx *gorm.DB, id uuid.UUID, motivo string) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Updates(map[string]interface{}{
		"estado":           model.VentaAnulada,
		"motivo_anulacion": motivo,
	}).Error
}

func (r *ventaRepo) CountAbiertasPorTurnoTx(tx *gorm.DB, turnoID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.Venta{}).
		Where("turno_id = ? AND estado = ?", turnoID, model.VentaAbierta).
		Count(&n).Error
	return n, err
}

func (r *ventaRepo) List(ctx context.Context, filter VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.TurnoID != nil {
		q = q.Where("turno_id = ?", *filter.TurnoID)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(created_at) = ?", filter.Fecha)
	} else {
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	err := q.Preload("Items.Producto").Preload("Pagos").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&ventas).Error
	return ventas, total, err
}
