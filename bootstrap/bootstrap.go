// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/pychain/forge/adapters/clock"
	"github.com/pychain/forge/adapters/hasher"
	"github.com/pychain/forge/adapters/idgen"
	"github.com/pychain/forge/adapters/memory"
	"github.com/pychain/forge/adapters/metrics"
	"github.com/pychain/forge/adapters/sqlite"
	"github.com/pychain/forge/app"
	"github.com/pychain/forge/config"
	"github.com/pychain/forge/domain/catalog"
	"github.com/pychain/forge/ports"
	"github.com/pychain/forge/web"
)

// App represents the running application.
type App struct {
	Logger     zerolog.Logger
	Config     *config.Config
	DB         *sqlite.DB // nil when history is in memory
	Metrics    *metrics.Collector
	HTTPServer *http.Server

	Generate *app.GenerateService
	Catalog  *app.CatalogService

	holder  *config.Holder // nil without hot reload
	version string
}

// Options configures application construction.
type Options struct {
	Version string
}

// New creates and initializes the application from a loaded config.
func New(cfg *config.Config, opts Options) (*App, error) {
	logger := newLogger(cfg.Logging)

	a := &App{
		Logger:  logger,
		Config:  cfg,
		version: opts.Version,
	}

	if err := a.init(); err != nil {
		return nil, err
	}
	return a, nil
}

// NewWithHotReload creates the application with config file watching.
// Reloads update the held config; server address changes require a restart.
func NewWithHotReload(path string, opts Options) (*App, error) {
	bootCfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger := newLogger(bootCfg.Logging)

	holder, err := config.NewHolder(path, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		Logger:  logger,
		Config:  holder.Get(),
		holder:  holder,
		version: opts.Version,
	}

	if err := a.init(); err != nil {
		return nil, err
	}

	holder.OnChange(func(cfg *config.Config) {
		if a.Metrics != nil {
			a.Metrics.ConfigReloads.Inc()
		}
	})
	if err := holder.WatchFile(); err != nil {
		logger.Warn().Err(err).Msg("config file watching unavailable")
	}
	holder.WatchSignals()

	return a, nil
}

func (a *App) init() error {
	cfg := a.Config

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		a.Logger.Info().Msg("prometheus metrics enabled")
	}

	// History store: SQLite when a path is configured, else in-memory.
	var history ports.GenerationStore
	if cfg.Database.Path != "" {
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return fmt.Errorf("migrate database: %w", err)
		}
		a.DB = db
		history = sqlite.NewGenerationStore(db)
		a.Logger.Info().Str("path", cfg.Database.Path).Msg("generation history on sqlite")
	} else {
		history = memory.NewGenerationStore()
		a.Logger.Info().Msg("generation history in memory")
	}

	reg := catalog.Builtin()
	a.Catalog = app.NewCatalogService(reg)

	var recorder app.MetricsRecorder
	if a.Metrics != nil {
		recorder = a.Metrics
	}
	a.Generate = app.NewGenerateService(app.GenerateDeps{
		Registry: reg,
		Clock:    clock.Real{},
		IDs:      idgen.UUID{},
		History:  history,
		Metrics:  recorder,
		Logger:   a.Logger,
	})

	handler := web.NewHandler(web.Deps{
		Generate: a.Generate,
		Catalog:  a.Catalog,
		Hasher:   hasher.NewBcrypt(0),
		Metrics:  a.Metrics,
		Logger:   a.Logger,
		Version:  a.version,
		Auth:     cfg.Auth,
		Docs:     cfg.Docs.Enabled,
	})

	a.HTTPServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return nil
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().Str("addr", a.HTTPServer.Addr).Msg("forge listening")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.HTTPServer.Shutdown(ctx); err != nil {
		a.Logger.Error().Err(err).Msg("server shutdown failed")
	}
	if a.holder != nil {
		a.holder.Stop()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("database close failed")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
