package main

import (
	"context"
	"net/http"
	"time"

	"github.com/asejik/invoice-aso-oke/internal/api"
	v1 "github.com/asejik/invoice-aso-oke/internal/api/v1"
	"github.com/asejik/invoice-aso-oke/internal/config"
	"github.com/asejik/invoice-aso-oke/internal/live"
	"github.com/asejik/invoice-aso-oke/internal/logger"
	"github.com/asejik/invoice-aso-oke/internal/pdf"
	"github.com/asejik/invoice-aso-oke/internal/repository"
	"github.com/asejik/invoice-aso-oke/internal/service"
	"github.com/asejik/invoice-aso-oke/internal/sqlite"
	"go.uber.org/fx"

	"github.com/gin-gonic/gin"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			func(cfg *config.Configuration) (*logger.Logger, error) {
				return logger.NewLogger(cfg)
			},

			// Local store
			func(cfg *config.Configuration, log *logger.Logger) (*sqlite.Client, error) {
				return sqlite.NewClient(cfg.Store.Path, log)
			},

			// Live query registry
			live.NewRegistry,

			// PDF generator
			pdf.NewGenerator,

			// Repositories
			repository.NewProfileRepository,
			repository.NewCustomerRepository,
			repository.NewInvoiceRepository,

			// Services
			service.NewServiceParams,
			service.NewProfileService,
			service.NewCustomerService,
			service.NewInvoiceService,
			service.NewLedgerService,
			service.NewDashboardService,
			service.NewDocumentService,

			// Handlers
			v1.NewProfileHandler,
			v1.NewCustomerHandler,
			v1.NewInvoiceHandler,
			v1.NewDashboardHandler,
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideHandlers(
	profile *v1.ProfileHandler,
	customer *v1.CustomerHandler,
	invoice *v1.InvoiceHandler,
	dashboard *v1.DashboardHandler,
) api.Handlers {
	return api.Handlers{
		Profile:   profile,
		Customer:  customer,
		Invoice:   invoice,
		Dashboard: dashboard,
	}
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	router *gin.Engine,
	client *sqlite.Client,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting server", "address", cfg.Server.Address, "store", cfg.Store.Path)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("shutting down server")
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			return client.Close()
		},
	})
}
