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
	"golang.org/x/time/rate"

	"github.com/Weesdome/Boardhub/internal/api"
	"github.com/Weesdome/Boardhub/internal/archive"
	"github.com/Weesdome/Boardhub/internal/auth"
	"github.com/Weesdome/Boardhub/internal/boardservice"
	"github.com/Weesdome/Boardhub/internal/mcpserver"
	"github.com/Weesdome/Boardhub/internal/store"
)

var errConfigRequired = errors.New("config is required")

// openService opens the database and the archive and builds the domain
// service. The caller closes the returned DB.
func (a *application) openService(ctx context.Context, logger *slog.Logger) (*boardservice.Service, *store.DB, error) {
	cfg := a.config

	db, err := store.Open(cfg.SQLite.Driver, cfg.SQLite.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init store: %w", err)
	}

	var opts []boardservice.Option
	arch, err := newArchiver(ctx, cfg.Archive)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("init archive: %w", err)
	}
	if arch != nil {
		opts = append(opts, boardservice.WithArchiver(arch))
	}
	logger.Info("Store opened",
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("sqlite_driver", cfg.SQLite.Driver),
		slog.String("archive_backend", cfg.Archive.Backend))

	return boardservice.New(db, db, opts...), db, nil
}

// newArchiver returns nil when archiving is disabled.
func newArchiver(ctx context.Context, cfg ArchiveConfig) (*archive.Archiver, error) {
	switch cfg.Backend {
	case ArchiveBackendFS:
		p, err := archive.NewFS(cfg.Path)
		if err != nil {
			return nil, err
		}
		return archive.New(p), nil
	case ArchiveBackendS3:
		p, err := archive.NewS3(ctx, archive.S3Options{
			Endpoint:     cfg.S3.Endpoint,
			Region:       cfg.S3.Region,
			Bucket:       cfg.S3.Bucket,
			AccessKey:    cfg.S3.AccessKey,
			SecretKey:    cfg.S3.SecretKey,
			UsePathStyle: cfg.S3.UsePathStyle,
		})
		if err != nil {
			return nil, err
		}
		if err := p.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return archive.New(p), nil
	default:
		return nil, nil
	}
}

// newHandler builds the root router: request middleware, health probes and
// the API under /api.
func newHandler(cfg *Config, svc *boardservice.Service, db *store.DB) http.Handler {
	sessions := auth.NewSessionCodec(cfg.Auth.Secret, cfg.Auth.CookieName, cfg.Auth.SessionTTL, cfg.Auth.SecureCookie)
	apiRouter := api.NewRouter(svc, api.Options{
		Sessions:     sessions,
		CSRF:         cfg.Auth.CSRF,
		SecureCookie: cfg.Auth.SecureCookie,
		LoginRate:    rate.Limit(cfg.Auth.LoginRate),
		LoginBurst:   cfg.Auth.LoginBurst,
	})

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
		if err := db.Ping(); err != nil {
			slog.Warn("readiness check failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)
	return r
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger := newLogger(cfg.App, os.Stdout)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("log_level", cfg.App.LogLevel.String()),
		slog.Bool("csrf", cfg.Auth.CSRF))

	svc, db, err := app.openService(ctx, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           newHandler(cfg, svc, db),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
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
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunImport imports a Markdown outline file as a new board owned by email.
func RunImport(ctx context.Context, email, path string, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := newLogger(app.config.App, os.Stderr)
	slog.SetDefault(logger)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read outline: %w", err)
	}

	svc, db, err := app.openService(ctx, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	sess, err := svc.SessionFor(ctx, email)
	if err != nil {
		return err
	}
	b, err := svc.ImportMarkdown(ctx, sess.UserID, data)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	logger.Info("Board imported",
		slog.String("board_id", b.ID),
		slog.String("title", b.Title),
		slog.Int("lists", len(b.Lists)),
		slog.String("user", sess.Email))
	return nil
}

// RunMCP serves the MCP tools on stdio on behalf of email. Logs go to stderr
// because stdout carries the protocol.
func RunMCP(ctx context.Context, email string, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := newLogger(app.config.App, os.Stderr)
	slog.SetDefault(logger)

	svc, db, err := app.openService(ctx, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	sess, err := svc.SessionFor(ctx, email)
	if err != nil {
		return err
	}
	logger.Info("MCP server starting", slog.String("user", sess.Email))
	return mcpserver.New(svc, *sess, app.version).ServeStdio()
}
