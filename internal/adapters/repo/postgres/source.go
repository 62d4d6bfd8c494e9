// Package postgres stores the dataset tables in PostgreSQL through gorm and
// reads them back as a dataset.Source.
package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phenrril/linqsamples/internal/dataset"
)

// Open connects with gorm's own logging silenced; callers log through
// zerolog.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errors.Wrap(err, "connect to database")
	}
	return db, nil
}

type Source struct{ db *gorm.DB }

func NewSource(db *gorm.DB) *Source { return &Source{db: db} }

func (s *Source) String() string { return "postgres" }

func (s *Source) Fetch(ctx context.Context) (dataset.Tables, error) {
	db := s.db.WithContext(ctx)

	var customers []customerRow
	err := db.Preload("Orders", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Order("position").Find(&customers).Error
	if err != nil {
		return dataset.Tables{}, errors.Wrap(err, "load customers")
	}
	var suppliers []supplierRow
	if err := db.Order("position").Find(&suppliers).Error; err != nil {
		return dataset.Tables{}, errors.Wrap(err, "load suppliers")
	}
	var products []productRow
	if err := db.Order("position").Find(&products).Error; err != nil {
		return dataset.Tables{}, errors.Wrap(err, "load products")
	}
	return fromRows(customers, suppliers, products), nil
}
