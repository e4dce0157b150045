package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/minierp-gateway/internal/application/reports"
	"github.com/jhoicas/minierp-gateway/internal/application/session"
	"github.com/jhoicas/minierp-gateway/internal/application/store"
	"github.com/jhoicas/minierp-gateway/internal/application/trading"
	"github.com/jhoicas/minierp-gateway/internal/domain/entity"
	"github.com/jhoicas/minierp-gateway/internal/infrastructure/localdb"
	infrapdf "github.com/jhoicas/minierp-gateway/internal/infrastructure/pdf"
	"github.com/jhoicas/minierp-gateway/internal/infrastructure/rest"
	httpRouter "github.com/jhoicas/minierp-gateway/internal/interfaces/http"
	"github.com/jhoicas/minierp-gateway/pkg/config"
	"github.com/jhoicas/minierp-gateway/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando aplicación")

	// Snapshot local (bbolt)
	db, err := localdb.Open(cfg.Cache.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir cache local")
	}
	defer db.Close()

	if err := db.EnsureSeed(log); err != nil {
		log.Fatal().Err(err).Msg("sembrar cache local")
	}

	sessionStore := localdb.NewSessionStore(db)

	// Clientes del backend REST
	client := rest.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout(), sessionStore, log)
	productAPI := rest.NewProductAPI(client)
	terceroAPI := rest.NewTerceroAPI(client)
	ventaAPI := rest.NewVentaAPI(client)
	compraAPI := rest.NewCompraAPI(client)
	reportAPI := rest.NewReportAPI(client)
	authAPI := rest.NewAuthAPI(client)

	// Almacenes de entidades
	bus := EventBus.New()
	productos := store.NewProductStore(productAPI, localdb.NewProductSnapshot(db, log), bus, log)
	terceros := store.NewTerceroStore(terceroAPI, localdb.NewTerceroSnapshot(db, log), log)
	ventas := store.NewTransactionStore(entity.KindSale, ventaAPI, localdb.NewVentaSnapshot(db, log), log)
	compras := store.NewTransactionStore(entity.KindPurchase, compraAPI, localdb.NewCompraSnapshot(db, log), log)

	composer := trading.NewComposer(productos, ventas, compras, log)
	aggregator := reports.NewAggregator(reportAPI, productos, ventas, compras, log)
	sessionManager := session.NewManager(authAPI, sessionStore, log)
	pdfGenerator := infrapdf.NewReportPDFGenerator()

	// Bitácora de cambios de catálogo
	if err := productos.Subscribe(func(p *entity.Product) {
		log.Debug().Str("sku", p.SKU).Int("stock", p.Stock).Msg("Producto actualizado")
	}); err != nil {
		log.Warn().Err(err).Msg("No se pudo suscribir a los cambios de producto")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mini ERP Gateway",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Productos: productos,
		Terceros:  terceros,
		Ventas:    ventas,
		Compras:   compras,
		Composer:  composer,
		Reports:   aggregator,
		ReportPDF: pdfGenerator,
		Session:   sessionManager,
	})

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
