package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExerciseRuns counts exercise runs by id and outcome.
	ExerciseRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linqsamples_exercise_runs_total",
			Help: "Total number of exercise runs",
		},
		[]string{"exercise", "status"},
	)
	// ExerciseDuration is the time spent querying and rendering one exercise.
	ExerciseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "linqsamples_exercise_duration_seconds",
			Help:    "Exercise run latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"exercise"},
	)
	// ExerciseLines is the number of lines the last run of an exercise produced.
	ExerciseLines = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "linqsamples_exercise_output_lines",
			Help: "Lines rendered by the most recent run of an exercise",
		},
		[]string{"exercise"},
	)
	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linqsamples_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
)
