package usecase

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/linqsamples/internal/dataset"
	"github.com/phenrril/linqsamples/internal/domain"
	"github.com/phenrril/linqsamples/internal/metrics"
	"github.com/phenrril/linqsamples/internal/report"
)

type ExerciseUC struct {
	Dataset *dataset.Dataset
	Format  report.Formatter
	// Workers bounds RunAll's concurrency.
	Workers int
}

// Result is the rendered output of one exercise.
type Result struct {
	Exercise Exercise
	Lines    []string
}

// List returns every registered exercise ordered by id.
func (uc *ExerciseUC) List() []Exercise {
	out := make([]Exercise, len(registry))
	copy(out, registry)
	return out
}

func (uc *ExerciseUC) Get(id string) (Exercise, error) {
	e, ok := lookup(id)
	if !ok {
		return Exercise{}, errors.Wrapf(domain.ErrNotFound, "exercise %q", id)
	}
	return e, nil
}

// Run renders one exercise. Output is buffered, a failed run returns no
// lines.
func (uc *ExerciseUC) Run(ctx context.Context, id string) ([]string, error) {
	e, err := uc.Get(id)
	if err != nil {
		metrics.ExerciseRuns.WithLabelValues("unknown", "not_found").Inc()
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		metrics.ExerciseRuns.WithLabelValues(e.ID, "canceled").Inc()
		return nil, err
	}
	if uc.Dataset == nil {
		return nil, errors.New("exercise use case has no dataset")
	}

	runID := uuid.NewString()
	start := time.Now()
	buf := report.NewBuffer(uc.Format)
	err = render(e, uc.Dataset, buf.Reporter)
	elapsed := time.Since(start)
	metrics.ExerciseDuration.WithLabelValues(e.ID).Observe(elapsed.Seconds())

	if err == nil {
		err = buf.Err()
	}
	if err != nil {
		metrics.ExerciseRuns.WithLabelValues(e.ID, "error").Inc()
		log.Error().Err(err).Str("run_id", runID).Str("exercise", e.ID).Msg("exercise failed")
		return nil, errors.Wrapf(err, "run exercise %s", e.ID)
	}
	lines := buf.Lines()
	metrics.ExerciseRuns.WithLabelValues(e.ID, "ok").Inc()
	metrics.ExerciseLines.WithLabelValues(e.ID).Set(float64(len(lines)))
	log.Debug().Str("run_id", runID).Str("exercise", e.ID).Int("lines", len(lines)).
		Dur("elapsed", elapsed).Msg("exercise run")
	return lines, nil
}

// render turns a panicking exercise into an error.
func render(e Exercise, ds *dataset.Dataset, r *report.Reporter) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = errors.Newf("exercise %s panicked: %v", e.ID, v)
		}
	}()
	e.render(ds, r)
	return nil
}

// RunAll runs the exercises named by ids, or every exercise when ids is
// empty, on a pool of Workers goroutines (GOMAXPROCS when zero). Results
// are in the order asked for; any failed run fails the whole call and the
// first failing position wins.
func (uc *ExerciseUC) RunAll(ctx context.Context, ids ...string) ([]Result, error) {
	list := uc.List()
	if len(ids) > 0 {
		list = make([]Exercise, 0, len(ids))
		for _, id := range ids {
			e, err := uc.Get(id)
			if err != nil {
				return nil, err
			}
			list = append(list, e)
		}
	}
	workers := uc.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(v any) {
		log.Error().Interface("panic", v).Msg("exercise worker panic")
	}))
	if err != nil {
		return nil, errors.Wrap(err, "start worker pool")
	}
	defer pool.Release()

	results := make([]Result, len(list))
	errs := make([]error, len(list))
	var wg sync.WaitGroup
	for i, e := range list {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if v := recover(); v != nil {
					errs[i] = errors.Newf("exercise %s panicked: %v", e.ID, v)
				}
			}()
			lines, err := uc.Run(ctx, e.ID)
			results[i] = Result{Exercise: e, Lines: lines}
			errs[i] = err
		})
		if err != nil {
			wg.Done()
			errs[i] = errors.Wrap(err, "submit exercise")
		}
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
