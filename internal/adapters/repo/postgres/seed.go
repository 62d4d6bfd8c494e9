package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/phenrril/linqsamples/internal/dataset"
)

// Migrate creates or updates the four tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models()...); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return nil
}

// Seed migrates and replaces the stored tables with t in one transaction.
func Seed(ctx context.Context, db *gorm.DB, t dataset.Tables) error {
	if _, err := dataset.New(t); err != nil {
		return err
	}
	if err := Migrate(ctx, db); err != nil {
		return err
	}
	customers, suppliers, products := toRows(t)
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range []any{&orderRow{}, &customerRow{}, &supplierRow{}, &productRow{}} {
			if err := all.Delete(m).Error; err != nil {
				return errors.Wrap(err, "clear tables")
			}
		}
		if len(customers) > 0 {
			if err := tx.CreateInBatches(&customers, 100).Error; err != nil {
				return errors.Wrap(err, "insert customers")
			}
		}
		if len(suppliers) > 0 {
			if err := tx.Create(&suppliers).Error; err != nil {
				return errors.Wrap(err, "insert suppliers")
			}
		}
		if len(products) > 0 {
			if err := tx.Create(&products).Error; err != nil {
				return errors.Wrap(err, "insert products")
			}
		}
		return nil
	})
}
