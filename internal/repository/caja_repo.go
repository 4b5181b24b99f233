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

// CajaRepository owns cajas, turnos and the cash ledger. The ledger is
// append-only by construction: there is no update or delete surface for
// MovimientoCaja.
type CajaRepository interface {
	DB() *gorm.DB

	CreateCaja(ctx context.Context, c *model.Caja) error
	FindCajaByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	// FindCajaForUpdateTx locks the caja row so concurrent turno opens
	// serialize on it.
	FindCajaForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Caja, error)
	ListCajas(ctx context.Context) ([]model.Caja, error)

	CreateTurnoTx(tx *gorm.DB, t *model.Turno) error
	FindTurnoByID(ctx context.Context, id uuid.UUID) (*model.Turno, error)
	// FindTurnoForUpdateTx locks the turno row so concurrent closes and
	// manual movimientos serialize against each other.
	FindTurnoForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Turno, error)
	// FindTurnoAbiertoPorCajaTx returns (nil, nil) when the caja has no
	// open turno.
	FindTurnoAbiertoPorCajaTx(tx *gorm.DB, cajaID uuid.UUID) (*model.Turno, error)
	UpdateTurnoTx(tx *gorm.DB, t *model.Turno) error
	ListTurnos(ctx context.Context, page, limit int) ([]model.Turno, int64, error)

	CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error
	ListMovimientos(ctx context.Context, turnoID uuid.UUID) ([]model.MovimientoCaja, error)
	// SumMovimientosTx returns the signed ingreso/egreso totals of a
	// turno's ledger.
	SumMovimientosTx(tx *gorm.DB, turnoID uuid.UUID) (ingresos, egresos decimal.Decimal, err error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) CreateCaja(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) FindCajaByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cajaRepo) FindCajaForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cajaRepo) ListCajas(ctx context.Context) ([]model.Caja, error) {
	var cajas []model.Caja
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&cajas).Error
	return cajas, err
}

func (r *cajaRepo) CreateTurnoTx(tx *gorm.DB, t *model.Turno) error {
	return tx.Create(t).Error
}

func (r *cajaRepo) FindTurnoByID(ctx context.Context, id uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).Preload("Movimientos").First(&t, "id = ?", id).Error
	return &t, err
}

func (r *cajaRepo) FindTurnoForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *cajaRepo) FindTurnoAbiertoPorCajaTx(tx *gorm.DB, cajaID uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	err := tx.Where("caja_id = ? AND estado = ?", cajaID, model.TurnoAbierto).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *cajaRepo) UpdateTurnoTx(tx *gorm.DB, t *model.Turno) error {
	return tx.Save(t).Error
}

func (r *cajaRepo) ListTurnos(ctx context.Context, page, limit int) ([]model.Turno, int64, error) {
	var turnos []model.Turno
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Turno{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("abierto_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&turnos).Error
	return turnos, total, err
}

func (r *cajaRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error {
	return tx.Create(m).Error
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, turnoID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).Where("turno_id = ?", turnoID).Order("created_at ASC").Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) SumMovimientosTx(tx *gorm.DB, turnoID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	type fila struct {
		Tipo  model.MovimientoTipo
		Total decimal.Decimal
	}
	var filas []fila
	err := tx.Model(&model.MovimientoCaja{}).
		Select("tipo, COALESCE(SUM(monto), 0) AS total").
		Where("turno_id = ?", turnoID).
		Group("tipo").
		Scan(&filas).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	ingresos, egresos := decimal.Zero, decimal.Zero
	for _, f := range filas {
		switch f.Tipo {
		case model.MovimientoIngreso:
			ingresos = f.Total
		case model.MovimientoEgreso:
			egresos = f.Total
		}
	}
	return ingresos, egresos, nil
}
