package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/AlibekovAA/stride/internal/common/logger"
)

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

type gooseLogger struct {
	log *logger.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infof("migrations: "+format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatalf("migrations: "+format, v...)
}

// Migrate applies every pending migration found under dir in fsys.
func Migrate(ctx context.Context, conn *sql.DB, dialect string, fsys fs.FS, dir string, log *logger.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{log: log})

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect %s: %w", dialect, err)
	}
	if err := goose.UpContext(ctx, conn, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// OpenForMigrations opens a database/sql handle through goose's driver
// mapping. The pgx stdlib driver must be registered by the caller.
func OpenForMigrations(driver, dsn string) (*sql.DB, error) {
	conn, err := goose.OpenDBWithDriver(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("goose open db: %w", err)
	}
	return conn, nil
}
