package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"KronosServe/pkg/config"
	xhttp "KronosServe/pkg/http"
	applogger "KronosServe/pkg/logger"
)

// Closer is any resource that must be released during shutdown.
type Closer interface {
	Close() error
}

type namedCloser struct {
	name   string
	closer Closer
}

// App encapsulates the application lifecycle: HTTP server plus the
// resources that must be closed on shutdown, in registration order.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	httpServer *xhttp.Server
	closers    []namedCloser
}

// New creates an App serving the given handler.
func New(cfg *config.Config, logger *applogger.Logger, handler xhttp.Handler) *App {
	return &App{cfg: cfg, logger: logger, handler: handler}
}

// AddCloser registers a resource to release during shutdown.
func (a *App) AddCloser(name string, c Closer) {
	a.closers = append(a.closers, namedCloser{name: name, closer: c})
}

// Run starts the HTTP server and blocks until an interrupt signal.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.handler, a.logger,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if err := a.httpServer.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	for _, nc := range a.closers {
		if err := nc.closer.Close(); err != nil {
			a.logger.Warn("close error",
				applogger.String("resource", nc.name),
				applogger.Error(err),
			)
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
