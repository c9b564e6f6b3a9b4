// Package devserver runs the in-memory development backend used to try the
// CLI locally. It listens for HTTP, handles graceful shutdown on SIGINT or
// SIGTERM and logs every request.
package devserver

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophgive/internal/devserver/config"
	"github.com/dmitrijs2005/gophgive/internal/devserver/httpapi"
	"github.com/dmitrijs2005/gophgive/internal/devserver/store"
	"github.com/dmitrijs2005/gophgive/internal/logging"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	server *http.Server
}

func NewApp(c *config.Config) *App {
	logger := logging.New(c.LogFormat, c.LogLevel, os.Stdout)

	api := httpapi.NewServer(store.NewSeeded(), logger, c.SecretKey, c.TokenTTL, c.PublicURL)

	return &App{
		config: c,
		logger: logger,
		server: &http.Server{
			Addr:              c.Address,
			Handler:           api.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	go func() {
		<-ctx.Done()
		app.logger.Info(context.Background(), "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "shutdown failed", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.Address)

	if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or the server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
