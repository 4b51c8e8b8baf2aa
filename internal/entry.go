// Package internal provides the main application initialization and runtime logic.
package internal

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/desknote/internal/api"
	"github.com/starford/desknote/internal/index"
	"github.com/starford/desknote/internal/mcpserver"
	"github.com/starford/desknote/internal/notelog"
	"github.com/starford/desknote/internal/noteservice"
	"github.com/starford/desknote/internal/render"
	"github.com/starford/desknote/internal/sse"
	"github.com/starford/desknote/internal/storage"
	"github.com/starford/desknote/internal/wallpaper"
)

// App holds the components built from a Config.
type App struct {
	cfg       *Config
	version   string
	logger    *slog.Logger
	store     storage.Provider
	notes     *notelog.Log
	db        *index.DB
	svc       *noteservice.Service
	outputDir string // absolute
	broker    *sse.Broker
}

// New builds the application from the given options.
func New(opts ...Option) (*App, error) {
	app := &application{
		logOutput: os.Stdout,
		version:   "dev",
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := app.logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
			Level: cfg.App.LogLevel,
		}))
	}
	slog.SetDefault(logger)

	dbPath := cfg.SQLite.Resolve(cfg.Data.Dir)
	logger.Debug("Configuration loaded",
		slog.String("data_dir", cfg.Data.Dir),
		slog.String("log_file", cfg.Data.LogFile),
		slog.String("output_dir", cfg.Data.OutputDir),
		slog.String("sqlite_path", dbPath),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Initialize storage rooted at the data directory.
	store, err := storage.NewFS(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	outputDir, err := store.Abs(cfg.Data.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}

	notes := notelog.New(store, cfg.Data.LogFile)

	renderer := app.renderer
	if renderer == nil {
		renderer = render.NewMagick(store, cfg.Data.OutputDir, render.Options{
			Binary:     cfg.Wallpaper.Magick,
			Font:       cfg.Wallpaper.Font,
			PointSize:  cfg.Wallpaper.PointSize,
			Background: cfg.Wallpaper.Background,
			Fill:       cfg.Wallpaper.Fill,
			Size:       cfg.Wallpaper.Size,
			TextWidth:  cfg.Wallpaper.TextWidth,
			Margin:     cfg.Wallpaper.Margin,
			Timeout:    cfg.Wallpaper.RenderTimeout,
			Keep:       cfg.Wallpaper.Keep,
		}, logger)
	}

	setter := app.setter
	if setter == nil {
		setter, err = wallpaper.New(cfg.Wallpaper.SetCommand)
		if err != nil {
			return nil, fmt.Errorf("init wallpaper setter: %w", err)
		}
	}

	// Initialize SQLite index.
	db, err := index.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}

	a := &App{
		cfg:       cfg,
		version:   app.version,
		logger:    logger,
		store:     store,
		notes:     notes,
		db:        db,
		outputDir: outputDir,
		broker:    sse.NewBroker(2 * time.Second),
	}

	a.svc = noteservice.NewService(notes, renderer, setter, logger,
		noteservice.WithIndex(db),
		noteservice.WithListener(a.publishOutcome),
	)

	return a, nil
}

// Close releases the index and the SSE broker.
func (a *App) Close() error {
	a.broker.Close()
	return a.db.Close()
}

// Service returns the submission pipeline.
func (a *App) Service() *noteservice.Service {
	return a.svc
}

// Notes returns the note log.
func (a *App) Notes() *notelog.Log {
	return a.notes
}

// Sync brings the search index up to date with the note log.
func (a *App) Sync() error {
	_, err := index.Sync(a.db, a.notes, a.logger)
	return err
}

func (a *App) publishOutcome(out *noteservice.Outcome) {
	a.broker.Publish(sse.Event{Type: sse.TypeNoteSubmitted, Data: map[string]any{
		"id":            out.ID,
		"text":          out.Text,
		"logged":        out.Entry != nil,
		"wallpaper_set": out.WallpaperSet(),
		"exit":          out.Exit,
	}})
}

// Handler builds the HTTP router: health checks, rendered images and the API.
func (a *App) Handler() http.Handler {
	apiRouter := api.NewRouter(a.svc, a.cfg.Auth.AuthEnabled(), a.cfg.Auth.Token, a.broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := a.db.Count(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"index unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Rendered images, behind the same auth as /api.
	r.With(api.AuthMiddleware(a.cfg.Auth.AuthEnabled(), a.cfg.Auth.Token)).
		Get("/wallpapers/{filename}", api.NewWallpaperHandler(a.outputDir).ServeFile)

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	return r
}

// watch keeps the index in sync with the log until ctx is done.
func (a *App) watch(ctx context.Context) error {
	if err := a.Sync(); err != nil {
		a.logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}
	return index.Watch(ctx, a.db, a.notes, a.logger, a.broker.PublishLogChange)
}

// Serve runs the HTTP shell and the log watcher until ctx is cancelled or a
// shutdown signal arrives.
func (a *App) Serve(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    a.cfg.App.HTTP.Address(),
		Handler: a.Handler(),
	}

	a.logger.Info("Server starting...", slog.String("http_address", a.cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start log watcher with SSE callback.
	g.Go(func() error {
		if err := a.watch(gCtx); err != nil {
			a.logger.Error("watcher failed", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		a.logger.Info("Starting HTTP server", slog.String("address", a.cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			a.logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			a.logger.Info("Context cancelled, initiating shutdown")
		}

		a.logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		a.logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	a.logger.Info("Server stopped successfully")
	return nil
}

// ServeMCP runs the MCP server on stdio alongside the log watcher.
func (a *App) ServeMCP(ctx context.Context) error {
	srv := mcpserver.New(a.svc, a.version)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.watch(gCtx); err != nil {
			a.logger.Warn("watcher failed", slog.String("error", err.Error()))
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return srv.ServeStdio()
	})
	return g.Wait()
}

// errShutdown cancels the errgroup after a clean HTTP shutdown.
var errShutdown = errors.New("shutdown")

// Run builds the application and serves HTTP until shutdown.
func Run(ctx context.Context, opts ...Option) error {
	app, err := New(opts...)
	if err != nil {
		return err
	}
	defer app.Close()
	return app.Serve(ctx)
}
