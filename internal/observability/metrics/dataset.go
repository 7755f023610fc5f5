package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DatasetLoadDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Duration of whole-snapshot loads in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"driver"},
	)

	DatasetSaveDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataset_save_duration_seconds",
			Help:    "Duration of whole-snapshot saves in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"driver"},
	)

	DatasetLoadFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_load_fallbacks_total",
			Help: "Total number of loads that fell back to an empty snapshot",
		},
		[]string{"driver", "reason"},
	)

	DatasetSaveErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_save_errors_total",
			Help: "Total number of failed snapshot saves",
		},
		[]string{"driver"},
	)

	DatasetRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Number of records in the last saved snapshot",
		},
		[]string{"kind"},
	)
)
