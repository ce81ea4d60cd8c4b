package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/ideadesk/internal/console/http"
	"github.com/aussiebroadwan/ideadesk/internal/datasource"
	"github.com/aussiebroadwan/ideadesk/internal/datasource/api"
	"github.com/aussiebroadwan/ideadesk/internal/datasource/demo"
	"github.com/aussiebroadwan/ideadesk/internal/guard"
	"github.com/aussiebroadwan/ideadesk/internal/metrics"
	"github.com/aussiebroadwan/ideadesk/internal/state"
	"github.com/aussiebroadwan/ideadesk/internal/store"
	"github.com/aussiebroadwan/ideadesk/internal/store/drivers/memory"
	"github.com/aussiebroadwan/ideadesk/internal/store/drivers/redis"
	"github.com/aussiebroadwan/ideadesk/internal/store/drivers/sqlite"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
	"github.com/aussiebroadwan/ideadesk/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the session store, the data source and the state
// container, and serves the console views.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	registry *prometheus.Registry
	source   datasource.Source
	state    *state.Store
	guard    *guard.Guard

	flash  *httpapi.Flash
	server *http.Server
	router *httpapi.Router
}

// New creates an Application with every dependency initialized and the
// persisted session restored. Nothing listens until Run.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "ideadesk",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		registry: prometheus.NewRegistry(),
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSource(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.state = state.New(state.Config{
		Source:   app.source,
		Storage:  app.db,
		Recorder: metrics.NewPrometheusRecorder(app.registry),
		Logger:   app.logger,
	})
	app.guard = guard.New(app.state.Session)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.state.Session.Restore(slogx.WithContext(ctx, app.logger)); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	app.initHTTP()

	return app, nil
}

// State returns the state container.
func (app *Application) State() *state.Store { return app.state }

func (app *Application) Logger() *slog.Logger { return app.logger }

// Run serves the console and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.flash = httpapi.NewFlash(app.state, app.cfg.FlashTTL)

	app.logger.Info("console starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"source", app.cfg.Source,
		"store", app.cfg.Store,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops the server, cancels every operation in flight and closes
// the session store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down console...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.Close(); err != nil {
		return err
	}

	app.logger.Info("console stopped")
	return nil
}

// Close releases everything but the HTTP server. Commands that never serve
// call it directly.
func (app *Application) Close() error {
	if app.flash != nil {
		app.flash.Stop()
	}
	app.state.CancelAll()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing session store", "error", err)
		return err
	}
	return nil
}

// initDatabase opens the session store and applies migrations.
func (app *Application) initDatabase() error {
	var db store.Store
	switch app.cfg.Store {
	case StoreSQLite:
		s, err := sqlite.NewStore("file:" + app.cfg.DatabaseFile)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db = s
	case StoreRedis:
		db = redis.NewStore(app.cfg.RedisAddr, app.cfg.RedisNamespace)
	default:
		db = memory.NewStore()
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("session store ready", "driver", app.cfg.Store)
	return nil
}

// initSource builds the data source. Both drivers read the access token from
// the session lazily, so the session may be created afterwards.
func (app *Application) initSource() error {
	tokens := apiclient.TokenFunc(func() string { return app.state.Session.AccessToken() })

	switch app.cfg.Source {
	case SourceAPI:
		client := apiclient.New(app.cfg.APIBaseURL)
		client.HTTPClient.Timeout = app.cfg.RequestTimeout
		client.Tokens = tokens
		client.Logger = app.logger
		client.UserAgent = "ideadesk/" + BuildVersion
		if app.cfg.OutboundRPS > 0 {
			client.Limiter = rate.NewLimiter(rate.Limit(app.cfg.OutboundRPS), max(1, int(app.cfg.OutboundRPS)))
		}
		app.source = api.New(client)
	default:
		src, err := demo.New(demo.WithLatency(app.cfg.DemoLatency))
		if err != nil {
			return err
		}
		src.Tokens = tokens
		app.source = src
		app.logger.Info("using demo data source", "admin", demo.AdminEmail)
	}
	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.state,
		app.guard,
		app.db,
		app.registry,
		BuildVersion,
		app.logger,
	)
	if app.cfg.LoginLimit.Window > 0 {
		router.LoginLimit = app.cfg.LoginLimit
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
