package infra

import (
	"fmt"

	"abbafoods/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the PostgreSQL connection and brings the schema up to
// date: AutoMigrate for tables and columns, then idempotent SQL patches for
// what GORM tags cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(15)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates every table used by the service. Safe to
// run on each start.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.MateriaPrima{},
		&model.PresentacionMaterial{},
		&model.Receta{},
		&model.IngredienteReceta{},
		&model.OrdenProduccion{},
		&model.Pedido{},
		&model.PedidoItem{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}

// applySchemaPatches adds constraints and indexes that AutoMigrate does not
// manage. Every statement is guarded so re-running is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"recipes: unique name ignoring case",
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_recipes_name_lower ON recipes (lower(name))`},
		{"orders: list by order_date", `CREATE INDEX IF NOT EXISTS idx_orders_order_date
			ON orders (order_date DESC, created_at DESC)`},
		{"production_orders: launched per day", `CREATE INDEX IF NOT EXISTS idx_production_orders_date
			ON production_orders (date DESC)`},
		{"materials: type check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_materials_type') THEN
    ALTER TABLE materials ADD CONSTRAINT chk_materials_type
      CHECK (type IN ('leche', 'insumo', 'empaque'));
  END IF;
END $$`},
		{"production_orders: status check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_production_orders_status') THEN
    ALTER TABLE production_orders ADD CONSTRAINT chk_production_orders_status
      CHECK (status IN ('en_proceso', 'terminado'));
  END IF;
END $$`},
		{"orders: payment/delivery check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_orders_flags') THEN
    ALTER TABLE orders ADD CONSTRAINT chk_orders_flags
      CHECK (payment_status IN ('pendiente', 'pagado')
         AND delivery_status IN ('pendiente', 'entregado'));
  END IF;
END $$`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
