package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TasksCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tasks_created_total",
			Help: "Total number of tasks created",
		},
	)

	TasksCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tasks_completed_total",
			Help: "Total number of tasks transitioned to completed",
		},
	)

	TasksDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tasks_deleted_total",
			Help: "Total number of tasks deleted",
		},
	)

	StreakTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streak_transitions_total",
			Help: "Total number of streak updates by outcome",
		},
		[]string{"outcome"},
	)
)
