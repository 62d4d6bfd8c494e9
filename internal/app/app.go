package app

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/phenrril/linqsamples/internal/adapters/httpserver"
	"github.com/phenrril/linqsamples/internal/adapters/repo/postgres"
	"github.com/phenrril/linqsamples/internal/config"
	"github.com/phenrril/linqsamples/internal/dataset"
	"github.com/phenrril/linqsamples/internal/dataset/fixture"
	"github.com/phenrril/linqsamples/internal/domain"
	"github.com/phenrril/linqsamples/internal/report"
	"github.com/phenrril/linqsamples/internal/usecase"
)

type App struct {
	Config    config.Config
	DB        *gorm.DB
	Dataset   *dataset.Dataset
	Exercises *usecase.ExerciseUC
}

func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	format, err := report.NewFormatter(cfg.Locale)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg}

	src, err := app.source()
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(ctx, src)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	counts := ds.Counts()
	log.Info().
		Str("source", cfg.Source).
		Int("customers", counts.Customers).
		Int("orders", counts.Orders).
		Int("suppliers", counts.Suppliers).
		Int("products", counts.Products).
		Msg("dataset loaded")

	app.Dataset = ds
	app.Exercises = &usecase.ExerciseUC{Dataset: ds, Format: format}
	return app, nil
}

func (a *App) source() (dataset.Source, error) {
	switch a.Config.Source {
	case config.SourcePostgres:
		db, err := postgres.Open(a.Config.DB.ConnString())
		if err != nil {
			return nil, errors.Mark(err, domain.ErrDataLoad)
		}
		a.DB = db
		return postgres.NewSource(db), nil
	case config.SourceFixture, "":
		return fixtureSource(a.Config.FixturePath), nil
	default:
		return nil, errors.Newf("unknown dataset source %q", a.Config.Source)
	}
}

func fixtureSource(path string) *fixture.Source {
	if path == "" {
		return fixture.Embedded()
	}
	return fixture.File(path)
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Exercises)
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// seedTables loads and validates the configured fixture.
func seedTables(ctx context.Context, cfg config.Config) (dataset.Tables, error) {
	ds, err := dataset.Load(ctx, fixtureSource(cfg.FixturePath))
	if err != nil {
		return dataset.Tables{}, err
	}
	return ds.Tables(), nil
}

// Seed copies the configured fixture into the database named by cfg.
func Seed(ctx context.Context, cfg config.Config) error {
	tables, err := seedTables(ctx, cfg)
	if err != nil {
		return err
	}
	db, err := postgres.Open(cfg.DB.ConnString())
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := postgres.Seed(ctx, db, tables); err != nil {
		return errors.Wrap(err, "seed")
	}
	log.Info().Int("customers", len(tables.Customers)).Int("suppliers", len(tables.Suppliers)).
		Int("products", len(tables.Products)).Msg("database seeded")
	return nil
}
