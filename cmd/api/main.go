package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	appanalytics "github.com/jhoicas/Tienda-POS/internal/application/analytics"
	"github.com/jhoicas/Tienda-POS/internal/application/auth"
	"github.com/jhoicas/Tienda-POS/internal/application/checkout"
	"github.com/jhoicas/Tienda-POS/internal/application/inventory"
	"github.com/jhoicas/Tienda-POS/internal/application/sales"
	"github.com/jhoicas/Tienda-POS/internal/application/usecase"
	"github.com/jhoicas/Tienda-POS/internal/domain/loyalty"
	"github.com/jhoicas/Tienda-POS/internal/infrastructure/kafka"
	infrapdf "github.com/jhoicas/Tienda-POS/internal/infrastructure/pdf"
	"github.com/jhoicas/Tienda-POS/internal/infrastructure/redisx"
	httpRouter "github.com/jhoicas/Tienda-POS/internal/interfaces/http"
	"github.com/jhoicas/Tienda-POS/pkg/config"
	"github.com/jhoicas/Tienda-POS/pkg/logger"
	"github.com/jhoicas/Tienda-POS/pkg/telemetry"
)

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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("telemetría")
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	policy, err := loyalty.FromConfig(cfg.Loyalty.Policy, cfg.Loyalty.Divisor, cfg.Loyalty.Rate)
	if err != nil {
		log.Fatal().Err(err).Msg("política de puntos")
	}

	// Eventos de venta: opcionales, sin brokers no se publica.
	var publisher checkout.EventPublisher
	var producer *kafka.SaleEventProducer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewSaleEventProducer(cfg.Kafka.Brokers, cfg.Kafka.SalesTopic, 256, log.Component("kafka"))
		producer.Start()
		publisher = producer
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.SalesTopic).Msg("publicación de ventas activa")
	}

	coordinator := checkout.NewCoordinator(store.txRunner, checkout.Settings{
		AllowNegativeStock: cfg.Checkout.AllowNegativeStock,
		Loyalty:            policy,
	}, publisher, log.Component("checkout"))

	// Caché del tablero: opcional, si Redis no responde se sigue sin caché.
	var statsCache appanalytics.StatsCache
	if cfg.Redis.Addr != "" {
		rdb, err := redisx.New(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, tablero sin caché")
		} else {
			defer rdb.Close()
			statsCache = redisx.NewDashboardCache(rdb, cfg.Redis.DashboardTTL)
		}
	}

	productUC := usecase.NewProductUseCase(store.products, cfg.Inventory.LowStockThreshold)
	customerUC := usecase.NewCustomerUseCase(store.customers)
	saleUC := usecase.NewSaleUseCase(coordinator, store.sales, store.customers, store.analytics)
	userUC := usecase.NewUserUseCase(store.users)
	receiptUC := sales.NewReceiptUseCase(store.sales, store.customers, store.products, infrapdf.NewMarotoReceiptGenerator(), cfg.App.ShopName)
	inventoryUC := inventory.NewInventoryUseCase(coordinator, store.products, store.movements)
	replenishmentUC := inventory.NewReplenishmentUseCase(store.products, store.analytics)
	dashboardUC := appanalytics.NewDashboardUseCase(store.analytics, statsCache, log.Component("dashboard"))
	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(cfg.App.Name, log.Component("http"))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda POS API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		UserUC:          userUC,
		ProductUC:       productUC,
		CustomerUC:      customerUC,
		SaleUC:          saleUC,
		ReceiptUC:       receiptUC,
		InventoryUC:     inventoryUC,
		ReplenishmentUC: replenishmentUC,
		DashboardUC:     dashboardUC,
		JWTSecret:       cfg.JWT.Secret,
		ServiceName:     cfg.App.Name,
		HealthCheck:     store.health,
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
	// Después del servidor: ya no entran ventas nuevas y se vacía la cola de eventos.
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar productor kafka")
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cerrar telemetría")
	}

	log.Info().Msg("aplicación detenida")
}
