package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/zeenatstore/zeenat-store/internal/application/auth"
	"github.com/zeenatstore/zeenat-store/internal/application/catalog"
	"github.com/zeenatstore/zeenat-store/internal/application/report"
	"github.com/zeenatstore/zeenat-store/internal/application/sales"
	"github.com/zeenatstore/zeenat-store/internal/domain/access"
	"github.com/zeenatstore/zeenat-store/pkg/logger"
)

// RouterDeps dependencias del router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *catalog.ProductUseCase
	CartUC     *sales.CartUseCase
	CheckoutUC *sales.CheckoutUseCase
	SaleUC     *sales.SaleUseCase
	ReportUC   *report.ReportUseCase
	Authorizer access.Authorizer
	Sessions   *Sessions

	JWTSecret    string
	TokenTTL     time.Duration
	SecureCookie bool
	StoreName    string

	StorageDriver string
	Ping          func(ctx context.Context) error // chequeo del almacenamiento, opcional
}

// Router registra las rutas.
func Router(app *fiber.App, deps RouterDeps) {
	p := &pages{authz: deps.Authorizer, sessions: deps.Sessions, storeName: deps.StoreName}
	can := func(perm access.Permission) fiber.Handler {
		return RequirePermission(deps.Authorizer, perm)
	}

	app.Get("/health", NewHealthHandler(deps.StorageDriver, deps.Ping).Health)

	// Auth (pública)
	authHandler := NewAuthHandler(deps.AuthUC, p, deps.TokenTTL, deps.SecureCookie)
	app.Get("/login", authHandler.LoginPage)
	app.Post("/login", authHandler.Login)

	// Todo lo de abajo requiere token de sesión
	protected := app.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/logout", authHandler.Logout)
	protected.Get("/password", authHandler.PasswordPage)
	protected.Post("/password", authHandler.ChangePassword)

	dashboardHandler := NewDashboardHandler(deps.ReportUC, p)
	protected.Get("/", can(access.PermViewDashboard), dashboardHandler.Dashboard)

	// Productos (manage_products)
	products := protected.Group("/products", can(access.PermManageProducts))
	productHandler := NewProductHandler(deps.ProductUC, p)
	products.Get("/", productHandler.List)
	products.Get("/new", productHandler.NewPage)
	products.Post("/new", productHandler.Create)
	products.Get("/:id/edit", productHandler.EditPage)
	products.Post("/:id/edit", productHandler.Update)
	products.Get("/:id/delete", productHandler.DeletePage)
	products.Post("/:id/delete", productHandler.Delete)
	products.Get("/:id/movements", productHandler.Movements)

	// Pantalla de venta (sell) y ventas completadas (view_sales)
	saleHandler := NewSaleHandler(deps.CartUC, deps.CheckoutUC, deps.SaleUC, p)
	sell := protected.Group("/sales/new", can(access.PermSell))
	sell.Get("/", saleHandler.CartPage)
	sell.Post("/items", saleHandler.AddItem)
	sell.Post("/items/:productID/remove", saleHandler.RemoveItem)
	sell.Post("/clear", saleHandler.Clear)
	sell.Post("/checkout", saleHandler.Checkout)

	salesGroup := protected.Group("/sales", can(access.PermViewSales))
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.Detail)
	salesGroup.Get("/:id/invoice", saleHandler.Invoice)

	// Reportes (view_reports)
	reports := protected.Group("/reports", can(access.PermViewReports))
	reportHandler := NewReportHandler(deps.ReportUC, p)
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/inventory/export", reportHandler.ExportInventory)
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/sales/export", reportHandler.ExportSales)
	reports.Get("/low-stock", reportHandler.LowStock)
}

// ServerConfig configuración del servidor fiber.
type ServerConfig struct {
	AppName      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewServer crea la app fiber: vistas, páginas de error, recuperación de panics, log de
// peticiones y rutas.
func NewServer(cfg ServerConfig, log *logger.Logger, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		Views:        NewViews(),
		ErrorHandler: ErrorHandler(log, deps.Authorizer, deps.StoreName),
	})
	app.Use(recover.New())
	if log != nil {
		app.Use(log.RequestLogger())
	}
	Router(app, deps)
	return app
}
