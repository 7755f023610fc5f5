package dataset

import (
	"context"
	"fmt"

	"github.com/AlibekovAA/stride/internal/common/config"
	"github.com/AlibekovAA/stride/internal/common/logger"
)

// Open builds the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig, log *logger.Logger) (ClosableStore, error) {
	switch cfg.Driver {
	case config.StoreDriverFile, "":
		return NewFileStore(cfg.Path, log), nil
	case config.StoreDriverSQLite:
		return NewSQLiteStore(ctx, log, cfg.SQLitePath)
	case config.StoreDriverPostgres:
		return NewPgStore(ctx, log, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidStoreDriver, cfg.Driver)
	}
}
