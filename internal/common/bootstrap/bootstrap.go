package bootstrap

import (
	"context"
	"fmt"

	"github.com/AlibekovAA/stride/internal/common/config"
	"github.com/AlibekovAA/stride/internal/common/logger"
	"github.com/AlibekovAA/stride/internal/dataset"
)

// App holds what every stride binary needs before it wires its own surface.
type App struct {
	Log    *logger.Logger
	Config config.Config
	Store  dataset.ClosableStore
	Writer *dataset.Writer
}

// NewApp loads .env and configuration, builds the logger and opens the store
// selected by STORE_DRIVER.
func NewApp(ctx context.Context, serviceName string) (*App, error) {
	envFile := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogDir, serviceName, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if envFile != "" {
		log.Infof("loaded environment from %s", envFile)
	}

	return newApp(ctx, log, cfg)
}

// NewStoreApp is NewApp for tools that only read the dataset and do not need
// a JWT secret.
func NewStoreApp(ctx context.Context, serviceName string, log *logger.Logger) (*App, error) {
	config.LoadDotEnv()

	storeCfg, err := config.LoadStoreConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load store config: %w", err)
	}
	loc, err := config.LoadLocation()
	if err != nil {
		return nil, err
	}

	if log == nil {
		log, err = logger.New("", serviceName, "warning")
		if err != nil {
			return nil, err
		}
	}

	return newApp(ctx, log, config.Config{Store: storeCfg, Location: loc})
}

func newApp(ctx context.Context, log *logger.Logger, cfg config.Config) (*App, error) {
	store, err := dataset.Open(ctx, cfg.Store, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}

	log.WithFields(ctx, logger.Fields{
		"driver": cfg.Store.Driver,
		"action": "store_opened",
	}).Info("dataset store ready")

	return &App{
		Log:    log,
		Config: cfg,
		Store:  store,
		Writer: dataset.NewWriter(store),
	}, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}
