package db

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/AlibekovAA/stride/internal/common/logger"
)

var fastRetry = RetryConfig{
	MaxAttempts:  3,
	InitialDelay: time.Millisecond,
	MaxDelay:     2 * time.Millisecond,
	Multiplier:   2,
}

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"deadline", context.DeadlineExceeded, false},
		{"pg connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"pg serialization", &pgconn.PgError{Code: "40001"}, true},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, true},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryableError(tc.err); got != tc.want {
				t.Errorf("IsRetryableError = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRetryWithBackoff_RetriesTransientErrors(t *testing.T) {
	log := logger.NewWithWriter(io.Discard, "test", "info")
	calls := 0

	err := RetryWithBackoff(context.Background(), log, fastRetry, "save snapshot", func() error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: "40P01"}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryWithBackoff_StopsOnPermanentError(t *testing.T) {
	log := logger.NewWithWriter(io.Discard, "test", "info")
	permanent := errors.New("syntax error")
	calls := 0

	err := RetryWithBackoff(context.Background(), log, fastRetry, "load snapshot", func() error {
		calls++
		return permanent
	})

	if !errors.Is(err, permanent) {
		t.Errorf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}

func TestRetryWithBackoff_GivesUp(t *testing.T) {
	log := logger.NewWithWriter(io.Discard, "test", "info")
	busy := sqlite3.Error{Code: sqlite3.ErrBusy}

	err := RetryWithBackoff(context.Background(), log, fastRetry, "save snapshot", func() error {
		return busy
	})

	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	var liteErr sqlite3.Error
	if !errors.As(err, &liteErr) {
		t.Errorf("expected wrapped sqlite error, got %v", err)
	}
}

func TestExtractTableFromOperation(t *testing.T) {
	if got := extractTableFromOperation("insert tasks"); got != "tasks" {
		t.Errorf("expected tasks, got %s", got)
	}
	if got := extractTableFromOperation("select users"); got != "users" {
		t.Errorf("expected users, got %s", got)
	}
	if got := extractTableFromOperation("vacuum"); got != "unknown" {
		t.Errorf("expected unknown, got %s", got)
	}
}

func TestQueries_NoRowsMapsToNotFound(t *testing.T) {
	q := Queries{Driver: "sqlite"}
	notFound := errors.New("not found")

	if err := q.HandleQueryError(sql.ErrNoRows, notFound, "select users", time.Now()); err != notFound {
		t.Errorf("expected notFound sentinel, got %v", err)
	}
	if err := q.HandleQueryError(nil, notFound, "select users", time.Now()); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestQueries_ExecErrorIsWrapped(t *testing.T) {
	q := Queries{Driver: "postgres"}
	cause := errors.New("constraint violated")

	err := q.HandleExecError(cause, "insert tasks", time.Now())
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped, got %v", err)
	}
}
