package service

import (
	"github.com/AlibekovAA/stride/internal/observability/metrics"
	"github.com/AlibekovAA/stride/internal/streak"
)

func incrementTasksCreated() {
	metrics.TasksCreatedTotal.Inc()
}

func incrementTasksCompleted(outcome streak.Outcome) {
	metrics.TasksCompletedTotal.Inc()
	metrics.StreakTransitionsTotal.WithLabelValues(string(outcome)).Inc()
}

func incrementTasksDeleted() {
	metrics.TasksDeletedTotal.Inc()
}
