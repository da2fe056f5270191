package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"applogs/internal/handler"
	"applogs/internal/logger"
)

// Config holds the server configuration.
type Config struct {
	Addr string
}

// App orchestrates the full server lifecycle.
type App struct {
	cfg  Config
	logs *logger.Logger
	log  *slog.Logger
}

// New creates a new App that logs through logs.
func New(cfg Config, logs *logger.Logger) *App {
	return &App{cfg: cfg, logs: logs, log: logs.Named("app")}
}

// Run listens on the configured address and blocks until ctx is cancelled or
// the server fails. It returns nil on clean shutdown.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.cfg.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	s := a.logs.Session()
	a.log.Info("log session started", "path", s.Path, "level", s.LevelName())

	h := handler.New(a.logs, a.logs.Named("http"))
	srv := &http.Server{Handler: h.Routes()}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server starting", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		a.log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	a.log.Info("server stopped")
	return nil
}
