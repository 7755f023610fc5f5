package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	authhttp "github.com/AlibekovAA/stride/internal/auth/http"
	authservice "github.com/AlibekovAA/stride/internal/auth/service"
	"github.com/AlibekovAA/stride/internal/common/bootstrap"
	"github.com/AlibekovAA/stride/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/stride/internal/common/crypto"
	commonhttp "github.com/AlibekovAA/stride/internal/common/http"
	"github.com/AlibekovAA/stride/internal/common/jwtverify"
	"github.com/AlibekovAA/stride/internal/common/logger"
	srv "github.com/AlibekovAA/stride/internal/common/server"
	"github.com/AlibekovAA/stride/internal/reminder"
	taskhttp "github.com/AlibekovAA/stride/internal/task/http"
	taskservice "github.com/AlibekovAA/stride/internal/task/service"
	userrepo "github.com/AlibekovAA/stride/internal/user/repository"
)

const serviceName = "stride"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.NewApp(ctx, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	log := app.Log
	cfg := app.Config

	realClock := clock.NewRealClock()
	idGenerator := commoncrypto.NewUUIDGenerator()

	authService := authservice.NewAuthService(
		authservice.AuthServiceDeps{
			Repo:        userrepo.NewSnapshotRepository(app.Writer),
			Hasher:      commoncrypto.NewBcryptHasher(),
			IDGenerator: idGenerator,
			Clock:       realClock,
			Log:         log,
		},
		authservice.AuthServiceConfig{
			JWTSecret:      cfg.JWTSecret,
			AccessTokenTTL: cfg.AccessTokenTTL,
		},
	)

	taskService := taskservice.NewTaskService(
		taskservice.TaskServiceDeps{
			Writer:      app.Writer,
			IDGenerator: idGenerator,
			Clock:       realClock,
			Log:         log,
		},
		taskservice.TaskServiceConfig{Location: cfg.Location},
	)

	requireAuth := jwtverify.Middleware(cfg.JWTSecret, log)
	authHandler := authhttp.NewHandler(authService, requireAuth, cfg.RequestTimeout, log)
	taskHandler := taskhttp.NewHandler(taskService, requireAuth, taskhttp.Config{
		Location:       cfg.Location,
		RequestTimeout: cfg.RequestTimeout,
	}, log)

	mux := http.NewServeMux()
	mux.Handle("/api/auth/", authHandler)
	mux.Handle("/api/user/", authHandler)
	mux.Handle("/api/todos", taskHandler)
	mux.Handle("/api/todos/", taskHandler)
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewStrictRateLimiter()
	baseHandler := commonhttp.BuildBaseHandler(serviceName, log, mux)

	rateLimited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			baseHandler.ServeHTTP(w, r)
			return
		}
		rateLimiter.Middleware(baseHandler).ServeHTTP(w, r)
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders: []string{"X-Trace-ID"},
		MaxAge:         600,
	}).Handler(rateLimited)

	schedulerCtx, stopScheduler := context.WithCancel(ctx)
	schedulerDone := make(chan struct{})
	if cfg.Reminder.Enabled {
		scheduler := reminder.NewScheduler(app.Store, newNotifier(app, log), realClock, reminder.Config{
			Hour:     cfg.Reminder.Hour,
			Window:   cfg.Reminder.Window,
			Location: cfg.Location,
		}, log)
		go func() {
			defer close(schedulerDone)
			scheduler.Start(schedulerCtx)
		}()
	} else {
		log.Info("reminders disabled")
		close(schedulerDone)
	}

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort).WithRequestTimeout(cfg.RequestTimeout), corsHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("%s service: stopping reminder scheduler", serviceName)
			stopScheduler()
			select {
			case <-schedulerDone:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
		func(ctx context.Context) error {
			rateLimiter.Stop()
			return nil
		},
		func(ctx context.Context) error {
			log.Infof("%s service: closing dataset store", serviceName)
			return app.Close()
		},
	}

	srv.StartWithGracefulShutdownAndHooks(server, log, serviceName, shutdownHooks)
}

func newNotifier(app *bootstrap.App, log *logger.Logger) reminder.Notifier {
	smtpCfg := app.Config.SMTP
	if smtpCfg.Configured() {
		log.Infof("reminder mail enabled via %s:%d", smtpCfg.Host, smtpCfg.Port)
		return reminder.NewSMTPNotifier(smtpCfg, app.Config.Location, log)
	}
	log.Warn("smtp not configured, reminders will only be logged")
	return reminder.NewLogNotifier(log, app.Config.Location)
}
