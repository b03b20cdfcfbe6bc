// Package server initializes and runs the application server. It opens the
// blob store, wires the services and the HTTP API, and handles graceful
// shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/portraitstudio/internal/genai"
	"github.com/dmitrijs2005/portraitstudio/internal/logging"
	"github.com/dmitrijs2005/portraitstudio/internal/server/archive"
	"github.com/dmitrijs2005/portraitstudio/internal/server/config"
	"github.com/dmitrijs2005/portraitstudio/internal/server/httpapi"
	"github.com/dmitrijs2005/portraitstudio/internal/server/kv"
	"github.com/dmitrijs2005/portraitstudio/internal/server/services"
	"github.com/dmitrijs2005/portraitstudio/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  kv.Store
	server *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewDefault()

	store, err := kv.Open(ctx, c.StoreDSN, c.StoreQuota)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	st := storage.New(store)

	us := services.NewUserService(st, c, logger)
	ls := services.NewLicenseService(st, logger)
	gs := services.NewGalleryService(st, logger)

	api := genai.New(c.GenAIBaseURL, genai.StaticKey(c.GenAIAPIKey), logger)
	ps := services.NewPortraitService(api, gs, archive.NewService(c), logger)

	srv := httpapi.NewServer(c, logger, st, us, ls, gs, ps, genai.NewQRClient(c.QRBaseURL))

	return &App{config: c, logger: logger, store: store, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if closer, ok := app.store.(kv.Closer); ok {
		if err := closer.Close(); err != nil {
			app.logger.Error(ctx, "store close error", "error", err.Error())
		}
	}
}
