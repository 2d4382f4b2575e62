// Package app wires the editor's components: storage, the report
// controller, the live hub, and the HTTP handlers.
package app

import (
	"context"
	"strings"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/config"
	"github.com/tlsguqwn-ship-it/rising-report/internal/export"
	"github.com/tlsguqwn-ship-it/rising-report/internal/handlers"
	"github.com/tlsguqwn-ship-it/rising-report/internal/interfaces"
	"github.com/tlsguqwn-ship-it/rising-report/internal/keymap"
	"github.com/tlsguqwn-ship-it/rising-report/internal/live"
	"github.com/tlsguqwn-ship-it/rising-report/internal/marketdata"
	"github.com/tlsguqwn-ship-it/rising-report/internal/mcp"
	"github.com/tlsguqwn-ship-it/rising-report/internal/report"
	"github.com/tlsguqwn-ship-it/rising-report/internal/share"
	"github.com/tlsguqwn-ship-it/rising-report/internal/storage"
	"github.com/tlsguqwn-ship-it/rising-report/internal/store"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Storage    interfaces.StorageManager
	Controller *report.Controller
	Keys       *keymap.Dispatcher
	Hub        *live.Hub
	Market     *marketdata.Service

	// HTTP handlers
	PageHandler     *handlers.PageHandler
	DocumentHandler *handlers.DocumentHandler
	KeyHandler      *handlers.KeyHandler
	ShareHandler    *handlers.ShareHandler
	ExportHandler   *handlers.ExportHandler
	SymbolsHandler  *handlers.SymbolsHandler
	HealthHandler   *handlers.HealthHandler
	VersionHandler  *handlers.VersionHandler
	MCPHandler      *mcp.Handler
}

// New initializes the application with all dependencies.
func New(ctx context.Context, cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.IsDevMode() {
		logger.Warn().Msg("RUNNING IN DEV MODE")
	} else if env != "prod" && env != "" {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("unrecognized environment value, defaulting to prod behavior")
	}

	storageManager, err := storage.NewStorageManager(logger, cfg)
	if err != nil {
		return nil, err
	}
	a.Storage = storageManager

	reportStore := store.NewReportStore(storageManager.KeyValueStorage(), logger)
	a.Controller = report.NewController(ctx, reportStore, logger)

	a.Keys = keymap.New(logger)
	a.Hub = live.NewHub(a.Keys, logger)
	a.Controller.AttachSurface(a.Hub, a.Hub)
	a.bindShortcuts(ctx)

	if cfg.MarketData.Enabled {
		a.Market = marketdata.NewService(marketdata.NewNaver(), a.Controller, logger)
	}

	a.initHandlers()

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// bindShortcuts registers the document-level keyboard shortcuts.
func (a *App) bindShortcuts(ctx context.Context) {
	a.Keys.Bind("ctrl+z", a.Controller.Undo)
	a.Keys.Bind("meta+z", a.Controller.Undo)
	a.Keys.Bind("ctrl+shift+z", a.Controller.Redo)
	a.Keys.Bind("meta+shift+z", a.Controller.Redo)
	a.Keys.Bind("ctrl+y", a.Controller.Redo)
	a.Keys.Bind("ctrl+s", func() { a.Controller.Save(ctx) })
	a.Keys.Bind("meta+s", func() { a.Controller.Save(ctx) })
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.PageHandler = handlers.NewPageHandler(a.Logger, a.Config.IsDevMode())
	a.HealthHandler = handlers.NewHealthHandler(a.Storage.KeyValueStorage(), a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)

	a.DocumentHandler = handlers.NewDocumentHandler(a.Controller, a.Logger)
	a.KeyHandler = handlers.NewKeyHandler(a.Keys, a.Logger)

	shareService := share.NewService(a.Storage.KeyValueStorage(), a.Logger)
	a.ShareHandler = handlers.NewShareHandler(shareService, a.Controller, a.PageHandler, a.Config.BaseURL(), a.Logger)

	exporter := export.New(a.Config.Export, a.Controller, a.Config.BaseURL(), a.Logger)
	a.ExportHandler = handlers.NewExportHandler(exporter, a.Logger)

	if a.Market != nil {
		a.SymbolsHandler = handlers.NewSymbolsHandler(a.Market, a.Logger)
	}

	a.MCPHandler = mcp.NewHandler(a.Controller, a.Market, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
