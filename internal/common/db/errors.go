package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/stride/internal/observability/metrics"
)

func extractTableFromOperation(operation string) string {
	operation = strings.ToLower(operation)
	if strings.Contains(operation, "task") {
		return "tasks"
	}
	if strings.Contains(operation, "user") {
		return "users"
	}
	return "unknown"
}

// Queries labels query metrics with the SQL backend that produced them.
type Queries struct {
	Driver string
}

func (q Queries) HandleQueryError(err error, notFoundErr error, operation string, startTime time.Time) error {
	q.MeasureQueryDuration(operation, startTime)

	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}
	q.countError(operation, err)
	return fmt.Errorf("failed to %s: %w", operation, err)
}

func (q Queries) HandleExecError(err error, operation string, startTime time.Time) error {
	q.MeasureQueryDuration(operation, startTime)

	if err == nil {
		return nil
	}
	q.countError(operation, err)
	return fmt.Errorf("failed to %s: %w", operation, err)
}

func (q Queries) MeasureQueryDuration(operation string, startTime time.Time) {
	table := extractTableFromOperation(operation)
	metrics.DBQueryDurationSeconds.WithLabelValues(q.Driver, operation, table).Observe(time.Since(startTime).Seconds())
}

func (q Queries) countError(operation string, err error) {
	table := extractTableFromOperation(operation)
	metrics.DBQueryErrors.WithLabelValues(q.Driver, operation, table, fmt.Sprintf("%T", err)).Inc()
}
