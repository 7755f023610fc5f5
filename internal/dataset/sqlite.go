package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/AlibekovAA/stride/internal/common/db"
	"github.com/AlibekovAA/stride/internal/common/logger"
	"github.com/AlibekovAA/stride/internal/observability/metrics"
	taskdomain "github.com/AlibekovAA/stride/internal/task/domain"
	userdomain "github.com/AlibekovAA/stride/internal/user/domain"
)

const driverSQLite = "sqlite"

// SQLiteStore is the single-file SQL backend. It shares the table layout and
// the replace-in-one-transaction save with PgStore.
type SQLiteStore struct {
	conn    *sql.DB
	log     *logger.Logger
	retry   db.RetryConfig
	queries db.Queries
}

func NewSQLiteStore(ctx context.Context, log *logger.Logger, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path+"?_fk=1&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.Migrate(ctx, conn, "sqlite3", migrationsFS, sqliteMigrationsDir, log); err != nil {
		conn.Close()
		return nil, err
	}

	return &SQLiteStore{
		conn:    conn,
		log:     log,
		retry:   db.DefaultRetryConfig,
		queries: db.Queries{Driver: driverSQLite},
	}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) Snapshot {
	start := time.Now()
	defer func() {
		metrics.DatasetLoadDurationSeconds.WithLabelValues(driverSQLite).Observe(time.Since(start).Seconds())
	}()

	var snap Snapshot
	err := db.RetryWithBackoff(ctx, s.log, s.retry, "load snapshot", func() error {
		var err error
		snap, err = s.load(ctx)
		return err
	})
	if err != nil {
		metrics.DatasetLoadFallbacksTotal.WithLabelValues(driverSQLite, fallbackUnreadable).Inc()
		s.log.WithFields(ctx, logger.Fields{
			"reason": fallbackUnreadable,
			"action": "dataset_load_fallback",
		}).Warnf("snapshot load failed, using empty dataset: %v", err)
		return Empty()
	}
	return snap.normalized()
}

func (s *SQLiteStore) load(ctx context.Context) (Snapshot, error) {
	snap := Empty()

	start := time.Now()
	rows, err := s.conn.QueryContext(ctx, selectUsersSQL)
	if err != nil {
		return Snapshot{}, s.queries.HandleQueryError(err, err, "select users", start)
	}
	for rows.Next() {
		var u userdomain.User
		var last sql.NullTime
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Streak, &last); err != nil {
			rows.Close()
			return Snapshot{}, s.queries.HandleQueryError(err, err, "scan users", start)
		}
		u.LastCompletionDate = nullTimePtr(last)
		snap.Users = append(snap.Users, u)
	}
	rows.Close()
	if err := s.queries.HandleQueryError(rows.Err(), rows.Err(), "select users", start); err != nil {
		return Snapshot{}, err
	}

	start = time.Now()
	rows, err = s.conn.QueryContext(ctx, selectTasksSQL)
	if err != nil {
		return Snapshot{}, s.queries.HandleQueryError(err, err, "select tasks", start)
	}
	for rows.Next() {
		var t taskdomain.Task
		var deadline, completedAt sql.NullTime
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &deadline, &t.RequiredMinutes, &t.Completed, &t.CreatedAt, &completedAt); err != nil {
			rows.Close()
			return Snapshot{}, s.queries.HandleQueryError(err, err, "scan tasks", start)
		}
		t.Deadline = nullTimePtr(deadline)
		t.CompletedAt = nullTimePtr(completedAt)
		snap.Tasks = append(snap.Tasks, t)
	}
	rows.Close()
	if err := s.queries.HandleQueryError(rows.Err(), rows.Err(), "select tasks", start); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	start := time.Now()
	defer func() {
		metrics.DatasetSaveDurationSeconds.WithLabelValues(driverSQLite).Observe(time.Since(start).Seconds())
	}()

	err := db.RetryWithBackoff(ctx, s.log, s.retry, "save snapshot", func() error {
		return s.save(ctx, snap)
	})
	if err != nil {
		metrics.DatasetSaveErrorsTotal.WithLabelValues(driverSQLite).Inc()
		s.log.WithFields(ctx, logger.Fields{
			"action": "dataset_save_failed",
		}).Errorf("snapshot save failed: %v", err)
		return err
	}

	metrics.DatasetRecords.WithLabelValues("users").Set(float64(len(snap.Users)))
	metrics.DatasetRecords.WithLabelValues("tasks").Set(float64(len(snap.Tasks)))
	return nil
}

func (s *SQLiteStore) save(ctx context.Context, snap Snapshot) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	start := time.Now()
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return s.queries.HandleExecError(err, "delete tasks", start)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return s.queries.HandleExecError(err, "delete users", start)
	}

	start = time.Now()
	insertUser, err := tx.PrepareContext(ctx, `INSERT INTO users (id, position, name, email, password_hash, streak, last_completion_date) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return s.queries.HandleExecError(err, "prepare insert users", start)
	}
	defer insertUser.Close()
	for i, u := range snap.Users {
		if _, err := insertUser.ExecContext(ctx, string(u.ID), i, u.Name, u.Email, u.PasswordHash, u.Streak, timePtrValue(u.LastCompletionDate)); err != nil {
			return s.queries.HandleExecError(err, "insert users", start)
		}
	}

	start = time.Now()
	insertTask, err := tx.PrepareContext(ctx, `INSERT INTO tasks (id, position, user_id, title, deadline, required_minutes, completed, created_at, completed_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return s.queries.HandleExecError(err, "prepare insert tasks", start)
	}
	defer insertTask.Close()
	for i, t := range snap.Tasks {
		if _, err := insertTask.ExecContext(ctx, string(t.ID), i, string(t.UserID), t.Title, timePtrValue(t.Deadline), t.RequiredMinutes, t.Completed, t.CreatedAt, timePtrValue(t.CompletedAt)); err != nil {
			return s.queries.HandleExecError(err, "insert tasks", start)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func timePtrValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
