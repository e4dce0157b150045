package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/minierp-gateway/internal/application/reports"
	"github.com/jhoicas/minierp-gateway/internal/application/session"
	"github.com/jhoicas/minierp-gateway/internal/application/store"
	"github.com/jhoicas/minierp-gateway/internal/application/trading"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Productos *store.ProductStore
	Terceros  *store.TerceroStore
	Ventas    *store.TransactionStore
	Compras   *store.TransactionStore
	Composer  *trading.Composer
	Reports   *reports.Aggregator
	ReportPDF SummaryPDFGenerator
	Session   *session.Manager
}

// Router registra las rutas del gateway.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth")
	authHandler := NewAuthHandler(deps.Session)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/session", authHandler.Session)

	// Productos
	productos := api.Group("/productos")
	productHandler := NewProductHandler(deps.Productos)
	productos.Get("/", productHandler.List)
	productos.Post("/", productHandler.Create)
	productos.Get("/:id", productHandler.GetByID)
	productos.Post("/:id/stock", productHandler.AdjustStock)

	// Terceros (clientes y proveedores)
	terceros := api.Group("/terceros")
	terceroHandler := NewTerceroHandler(deps.Terceros)
	terceros.Get("/", terceroHandler.List)
	terceros.Post("/", terceroHandler.Create)
	terceros.Get("/:id", terceroHandler.GetByID)
	terceros.Put("/:id", terceroHandler.Update)
	terceros.Delete("/:id", terceroHandler.Delete)

	// Ventas
	ventas := api.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.Ventas, deps.Composer)
	ventas.Get("/", ventaHandler.List)
	ventas.Post("/", ventaHandler.Create)

	// Compras
	compras := api.Group("/compras")
	compraHandler := NewCompraHandler(deps.Compras, deps.Composer)
	compras.Get("/", compraHandler.List)
	compras.Post("/", compraHandler.Create)

	// Reportes
	reportes := api.Group("/reportes")
	reportHandler := NewReportHandler(deps.Reports, deps.ReportPDF)
	reportes.Get("/resumen", reportHandler.Summary)
	reportes.Get("/ventas.csv", reportHandler.CSV(reports.CSVVentas))
	reportes.Get("/compras.csv", reportHandler.CSV(reports.CSVCompras))
	reportes.Get("/resumen.csv", reportHandler.CSV(reports.CSVResumen))
	reportes.Get("/resumen.pdf", reportHandler.PDF)
}
