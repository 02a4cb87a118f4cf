package http

import (
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
)

// HTTPObserver registra duración y código de cada petición. Lo implementa metrics.Prometheus.
type HTTPObserver interface {
	ObserveHTTP(route, code string, seconds float64)
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	Ledger         *inventory.Ledger
	LineUC         *production.LineUseCase
	ResourceUC     *production.ResourceUseCase
	RequestUC      *production.RequestUseCase
	AnalyticsUC    *production.AnalyticsUseCase
	JWTSecret      string
	JWTIssuer      string
	ServiceName    string
	Log            zerolog.Logger
	Observer       HTTPObserver    // opcional
	MetricsHandler nethttp.Handler // opcional: expone /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log.With().Str("component", "http").Logger()

	if deps.Observer != nil {
		app.Use(observe(deps.Observer))
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Ledger: los ajustes manuales quedan para owner y manager
	inv := protected.Group("/inventory/products/:id")
	inventoryHandler := NewInventoryHandler(deps.Ledger, log)
	inv.Post("/credit", RequireRole(RoleOwner, RoleManager), inventoryHandler.Credit)
	inv.Post("/debit", RequireRole(RoleOwner, RoleManager), inventoryHandler.Debit)
	inv.Get("/transactions", inventoryHandler.Transactions)
	inv.Get("/verify", inventoryHandler.Verify)

	// Production lines
	lines := protected.Group("/production-lines")
	lineHandler := NewProductionLineHandler(deps.LineUC, log)
	resourceHandler := NewProductionResourceHandler(deps.ResourceUC, log)
	requestHandler := NewProductionRequestHandler(deps.RequestUC, log)
	lines.Post("/", lineHandler.Create)
	lines.Get("/", lineHandler.List)
	lines.Get("/:id", lineHandler.GetByID)
	lines.Put("/:id", lineHandler.Update)
	lines.Put("/:id/start", lineHandler.Start)
	lines.Put("/:id/complete", lineHandler.Complete)
	lines.Delete("/:id", lineHandler.Delete)
	lines.Post("/:id/resources", resourceHandler.Add)
	lines.Get("/:id/resources", resourceHandler.List)
	lines.Post("/:id/requests", requestHandler.Create)
	lines.Get("/:id/requests", requestHandler.List)

	resources := protected.Group("/production-resources")
	resources.Put("/:id", resourceHandler.Update)
	resources.Delete("/:id", resourceHandler.Delete)

	requests := protected.Group("/production-requests")
	requests.Put("/:id/fulfill", requestHandler.Fulfill)
	requests.Put("/:id/cancel", requestHandler.Cancel)
	requests.Delete("/:id", requestHandler.Delete)

	// Analytics
	prod := protected.Group("/production")
	analyticsHandler := NewProductionAnalyticsHandler(deps.AnalyticsUC, log)
	prod.Get("/analytics/summary", analyticsHandler.Summary)
	prod.Get("/analytics/efficiency", analyticsHandler.Efficiency)
	prod.Get("/analytics/efficiency/pdf", analyticsHandler.EfficiencyPDF)
	prod.Get("/analytics/overview", analyticsHandler.Overview)
	prod.Get("/:id/variance", analyticsHandler.ResourceVariance)
}

// observe mide cada petición por patrón de ruta.
func observe(o HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		o.ObserveHTTP(c.Route().Path, strconv.Itoa(status), time.Since(start).Seconds())
		return err
	}
}
