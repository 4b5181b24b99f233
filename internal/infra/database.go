package infra

import (
	"fmt"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection, runs AutoMigrate for every
// model and then applies the idempotent SQL patches GORM cannot express
// (partial unique indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates/updates the schema. Also used by integration
// tests against throwaway containers.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Caja{},
		&model.Turno{},
		&model.MovimientoCaja{},
		&model.CategoriaProducto{},
		&model.Ingrediente{},
		&model.SubIngrediente{},
		&model.Producto{},
		&model.Receta{},
		&model.RecetaItem{},
		&model.ListaPrecio{},
		&model.ListaPrecioItem{},
		&model.StockMovimiento{},
		&model.Cliente{},
		&model.Mesa{},
		&model.Venta{},
		&model.VentaItem{},
		&model.Pago{},
		&model.Descuento{},
		&model.Proveedor{},
		&model.Gasto{},
		&model.PedidoCocina{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot
// handle. Each statement is guarded so re-running is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// One open turno per caja, enforced at the database even if the
		// row-lock discipline in the service layer is ever bypassed.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uniq_turno_abierto_por_caja') THEN
		    CREATE UNIQUE INDEX uniq_turno_abierto_por_caja
		        ON turnos (caja_id)
		        WHERE estado = 'abierto';
		  END IF;
		END $$`,
		// Ledger replay and per-venta lookups scan by reference.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_stock_movimientos_referencia') THEN
		    CREATE INDEX idx_stock_movimientos_referencia
		        ON stock_movimientos (referencia_id)
		        WHERE referencia_id IS NOT NULL;
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_movimientos_caja_referencia') THEN
		    CREATE INDEX idx_movimientos_caja_referencia
		        ON movimientos_caja (referencia_id)
		        WHERE referencia_id IS NOT NULL;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
