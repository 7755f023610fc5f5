package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReminderRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_runs_total",
			Help: "Total number of reminder runs",
		},
	)

	RemindersSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_sent_total",
			Help: "Total number of reminders delivered",
		},
		[]string{"notifier"},
	)

	ReminderFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_failures_total",
			Help: "Total number of reminder deliveries that failed",
		},
		[]string{"notifier"},
	)

	ReminderLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reminder_last_run_timestamp_seconds",
			Help: "Unix time of the last reminder run",
		},
	)
)
