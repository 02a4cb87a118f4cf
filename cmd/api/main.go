package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/ports"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	inframetrics "github.com/jhoicas/Produccion-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Produccion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/storage"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/Produccion-api/internal/interfaces/http"
	"github.com/jhoicas/Produccion-api/pkg/config"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg.DB, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	var (
		metrics  ports.Metrics = ports.NopMetrics{}
		recorder *inframetrics.Prometheus
	)
	if cfg.Metrics.Enabled {
		recorder = inframetrics.NewPrometheus()
		metrics = recorder
	}

	zl := log.Zerolog()
	repos := backend.Repos
	ledger := inventory.NewLedger(backend.TxRunner, repos.Products, repos.Transactions, metrics, zl)
	deps := production.Deps{
		TxRunner:  backend.TxRunner,
		Ledger:    ledger,
		Products:  repos.Products,
		Lines:     repos.Lines,
		Resources: repos.Resources,
		Requests:  repos.Requests,
		Metrics:   metrics,
		Log:       zl,
	}
	productUC := usecase.NewProductUseCase(repos.Products, backend.Categories, backend.TxRunner, ledger, zl)
	analyticsUC := production.NewAnalyticsUseCase(backend.Analytics, repos.Lines, zl).
		WithExporters(infrapdf.NewMarotoReportGenerator(), xmlexport.NewVarianceExporter())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Produccion API",
		}))
	}

	routerDeps := httpRouter.RouterDeps{
		ProductUC:   productUC,
		Ledger:      ledger,
		LineUC:      production.NewLineUseCase(deps),
		ResourceUC:  production.NewResourceUseCase(deps),
		RequestUC:   production.NewRequestUseCase(deps),
		AnalyticsUC: analyticsUC,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		ServiceName: cfg.App.Name,
		Log:         zl,
	}
	if recorder != nil {
		routerDeps.Observer = recorder
		routerDeps.MetricsHandler = recorder.Handler()
	}
	httpRouter.Router(app, routerDeps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
