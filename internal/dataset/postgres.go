package dataset

import (
	"context"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	_ "github.com/jackc/pgx/v4/stdlib"

	"github.com/AlibekovAA/stride/internal/common/constants"
	"github.com/AlibekovAA/stride/internal/common/db"
	"github.com/AlibekovAA/stride/internal/common/logger"
	"github.com/AlibekovAA/stride/internal/observability/metrics"
	taskdomain "github.com/AlibekovAA/stride/internal/task/domain"
	userdomain "github.com/AlibekovAA/stride/internal/user/domain"
)

const driverPostgres = "postgres"

const (
	selectUsersSQL = `SELECT id, name, email, password_hash, streak, last_completion_date FROM users ORDER BY position`
	selectTasksSQL = `SELECT id, user_id, title, deadline, required_minutes, completed, created_at, completed_at FROM tasks ORDER BY position`
)

// PgStore keeps the snapshot in two tables and replaces both inside one
// serializable transaction on every save.
type PgStore struct {
	pool        *pgxpool.Pool
	log         *logger.Logger
	retry       db.RetryConfig
	queries     db.Queries
	stopMetrics context.CancelFunc
}

func NewPgStore(ctx context.Context, log *logger.Logger, databaseURL string) (*PgStore, error) {
	conn, err := db.OpenForMigrations("pgx", databaseURL)
	if err != nil {
		return nil, err
	}
	err = db.Migrate(ctx, conn, "postgres", migrationsFS, postgresMigrationsDir, log)
	conn.Close()
	if err != nil {
		return nil, err
	}

	pool, err := db.NewPool(ctx, log, databaseURL)
	if err != nil {
		return nil, err
	}

	metricsCtx, stop := context.WithCancel(context.Background())
	db.StartPoolMetrics(metricsCtx, pool, constants.DBPoolMetricsInterval)

	return &PgStore{
		pool:        pool,
		log:         log,
		retry:       db.DefaultRetryConfig,
		queries:     db.Queries{Driver: driverPostgres},
		stopMetrics: stop,
	}, nil
}

func (s *PgStore) Load(ctx context.Context) Snapshot {
	start := time.Now()
	defer func() {
		metrics.DatasetLoadDurationSeconds.WithLabelValues(driverPostgres).Observe(time.Since(start).Seconds())
	}()

	var snap Snapshot
	err := db.RetryWithBackoff(ctx, s.log, s.retry, "load snapshot", func() error {
		var err error
		snap, err = s.load(ctx)
		return err
	})
	if err != nil {
		metrics.DatasetLoadFallbacksTotal.WithLabelValues(driverPostgres, fallbackUnreadable).Inc()
		s.log.WithFields(ctx, logger.Fields{
			"reason": fallbackUnreadable,
			"action": "dataset_load_fallback",
		}).Warnf("snapshot load failed, using empty dataset: %v", err)
		return Empty()
	}
	return snap.normalized()
}

func (s *PgStore) load(ctx context.Context) (Snapshot, error) {
	snap := Empty()

	start := time.Now()
	rows, err := s.pool.Query(ctx, selectUsersSQL)
	if err != nil {
		return Snapshot{}, s.queries.HandleQueryError(err, err, "select users", start)
	}
	for rows.Next() {
		var u userdomain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Streak, &u.LastCompletionDate); err != nil {
			rows.Close()
			return Snapshot{}, s.queries.HandleQueryError(err, err, "scan users", start)
		}
		snap.Users = append(snap.Users, u)
	}
	rows.Close()
	if err := s.queries.HandleQueryError(rows.Err(), rows.Err(), "select users", start); err != nil {
		return Snapshot{}, err
	}

	start = time.Now()
	rows, err = s.pool.Query(ctx, selectTasksSQL)
	if err != nil {
		return Snapshot{}, s.queries.HandleQueryError(err, err, "select tasks", start)
	}
	for rows.Next() {
		var t taskdomain.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Deadline, &t.RequiredMinutes, &t.Completed, &t.CreatedAt, &t.CompletedAt); err != nil {
			rows.Close()
			return Snapshot{}, s.queries.HandleQueryError(err, err, "scan tasks", start)
		}
		snap.Tasks = append(snap.Tasks, t)
	}
	rows.Close()
	if err := s.queries.HandleQueryError(rows.Err(), rows.Err(), "select tasks", start); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

func (s *PgStore) Save(ctx context.Context, snap Snapshot) error {
	start := time.Now()
	defer func() {
		metrics.DatasetSaveDurationSeconds.WithLabelValues(driverPostgres).Observe(time.Since(start).Seconds())
	}()

	err := db.RetryWithBackoff(ctx, s.log, s.retry, "save snapshot", func() error {
		return s.save(ctx, snap)
	})
	if err != nil {
		metrics.DatasetSaveErrorsTotal.WithLabelValues(driverPostgres).Inc()
		s.log.WithFields(ctx, logger.Fields{
			"action": "dataset_save_failed",
		}).Errorf("snapshot save failed: %v", err)
		return err
	}

	metrics.DatasetRecords.WithLabelValues("users").Set(float64(len(snap.Users)))
	metrics.DatasetRecords.WithLabelValues("tasks").Set(float64(len(snap.Tasks)))
	return nil
}

func (s *PgStore) save(ctx context.Context, snap Snapshot) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	start := time.Now()
	if _, err := tx.Exec(ctx, `DELETE FROM tasks`); err != nil {
		return s.queries.HandleExecError(err, "delete tasks", start)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM users`); err != nil {
		return s.queries.HandleExecError(err, "delete users", start)
	}

	batch := &pgx.Batch{}
	for i, u := range snap.Users {
		batch.Queue(
			`INSERT INTO users (id, position, name, email, password_hash, streak, last_completion_date) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			string(u.ID), i, u.Name, u.Email, u.PasswordHash, u.Streak, u.LastCompletionDate,
		)
	}
	for i, t := range snap.Tasks {
		batch.Queue(
			`INSERT INTO tasks (id, position, user_id, title, deadline, required_minutes, completed, created_at, completed_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			string(t.ID), i, string(t.UserID), t.Title, t.Deadline, t.RequiredMinutes, t.Completed, t.CreatedAt, t.CompletedAt,
		)
	}

	start = time.Now()
	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return s.queries.HandleExecError(err, "insert users and tasks", start)
		}
	}
	if err := results.Close(); err != nil {
		return s.queries.HandleExecError(err, "insert users and tasks", start)
	}

	return tx.Commit(ctx)
}

func (s *PgStore) Close() error {
	s.stopMetrics()
	s.pool.Close()
	return nil
}
