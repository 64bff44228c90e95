package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bakery-erp/internal/application/auth"
	"github.com/jhoicas/bakery-erp/internal/application/dashboard"
	"github.com/jhoicas/bakery-erp/internal/application/inventory"
	"github.com/jhoicas/bakery-erp/internal/application/report"
	"github.com/jhoicas/bakery-erp/internal/application/usecase"
	"github.com/jhoicas/bakery-erp/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	WarehouseUC   *usecase.WarehouseUseCase
	PreferencesUC *usecase.PreferencesUseCase
	ModuleService *usecase.ModuleService
	DashboardUC   *dashboard.UseCase
	Store         *inventory.Store
	ReportUC      *report.UseCase
	Log           zerolog.Logger
}

// AppConfig opciones del servidor BFF.
type AppConfig struct {
	Name        string
	SwaggerFile string              // vacío o inexistente = sin /docs
	Gatherer    prometheus.Gatherer // nil = sin /metrics
}

// NewApp construye la aplicación Fiber con /health, /metrics, /docs y las rutas de /api.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "Bakery ERP BFF",
			}))
		} else {
			deps.Log.Warn().Str("file", cfg.SwaggerFile).Msg("http: swagger deshabilitado, archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sesión (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.WarehouseUC, deps.Store, deps.Log)
	session := api.Group("/session")
	session.Post("/login", authHandler.Login)
	session.Post("/logout", authHandler.Logout)
	session.Get("/", authHandler.Status)

	// Preferencias (público: aplican también a la pantalla de login)
	prefsHandler := NewPreferencesHandler(deps.PreferencesUC)
	api.Get("/preferences", prefsHandler.Get)
	api.Put("/preferences", prefsHandler.Update)

	// Rutas protegidas (requieren sesión persistida)
	protected := api.Group("/", SessionMiddleware(deps.AuthUC))

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ModuleService)
	protected.Get("/navigation", dashboardHandler.GetNavigation)
	protected.Get("/dashboard", dashboardHandler.GetSummary)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	protected.Get("/warehouses", warehouseHandler.List)
	protected.Put("/warehouses/active", warehouseHandler.Select)

	// Inventario (protegido + módulo Inventory)
	inv := protected.Group("/inventory", RequireModule(string(access.ModuleInventory), deps.ModuleService))
	inventoryHandler := NewInventoryHandler(deps.Store, deps.WarehouseUC, deps.ReportUC)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Post("/movements", inventoryHandler.AddMovement)
	inv.Get("/balances", inventoryHandler.ListBalances)
	inv.Get("/batches", inventoryHandler.ListBatches)
	inv.Get("/cache", inventoryHandler.CacheState)
	inv.Post("/invalidate", inventoryHandler.Invalidate)
	inv.Get("/export", inventoryHandler.Export)
	inv.Get("/report", inventoryHandler.Report)
}
