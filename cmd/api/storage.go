package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-POS/internal/application/checkout"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
	"github.com/jhoicas/Tienda-POS/internal/infrastructure/memory"
	"github.com/jhoicas/Tienda-POS/internal/infrastructure/postgres"
	"github.com/jhoicas/Tienda-POS/pkg/config"
	"github.com/jhoicas/Tienda-POS/pkg/logger"
)

// storage agrupa los repositorios del driver elegido.
type storage struct {
	txRunner  checkout.TxRunner
	products  repository.ProductRepository
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	movements repository.StockMovementRepository
	users     repository.UserRepository
	analytics repository.AnalyticsRepository
	health    func(ctx context.Context) error
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Store.Driver == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.New(cfg.Checkout.LockTimeout)
		return &storage{
			txRunner:  s,
			products:  s.Products(),
			customers: s.Customers(),
			sales:     s.Sales(),
			movements: s.Movements(),
			users:     s.Users(),
			analytics: s.Analytics(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		for _, name := range applied {
			log.Info().Str("migration", name).Msg("migración aplicada")
		}
	}
	iso, err := postgres.ParseIsoLevel(cfg.Checkout.IsolationLevel)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &storage{
		txRunner:  postgres.NewTxRunner(pool, iso, cfg.Checkout.LockTimeout),
		products:  postgres.NewProductRepository(pool),
		customers: postgres.NewCustomerRepository(pool),
		sales:     postgres.NewSaleRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		users:     postgres.NewUserRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		health:    pool.Ping,
		close:     pool.Close,
	}, nil
}
