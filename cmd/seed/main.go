// seed carga datos iniciales en PostgreSQL: usuario administrador y, opcionalmente,
// productos desde un CSV exportado de hoja de cálculo (ISO-8859-1, separado por ';').
//
// Uso: go run ./cmd/seed [productos.csv]
//
// Columnas: nombre;marca;categoria;codigo_barras;precio_compra;precio_venta;cantidad
// La primera fila es encabezado. Productos con código de barras repetido se omiten.
// Password del admin: SEED_ADMIN_PASSWORD (obligatoria), email: SEED_ADMIN_EMAIL.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Tienda-POS/internal/application/auth"
	"github.com/jhoicas/Tienda-POS/internal/application/dto"
	"github.com/jhoicas/Tienda-POS/internal/application/usecase"
	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/infrastructure/postgres"
	"github.com/jhoicas/Tienda-POS/pkg/config"
	"github.com/jhoicas/Tienda-POS/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if _, err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
	})
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@tienda.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD es requerida")
	}
	_, err = authUC.RegisterUser(ctx, dto.RegisterRequest{Email: email, Password: password, Name: "Administrador", Role: entity.RoleAdmin})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", email).Msg("admin ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear admin")
	default:
		log.Info().Str("email", email).Msg("admin creado")
	}

	if len(os.Args) < 2 {
		return
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool), cfg.Inventory.LowStockThreshold)
	created, skipped, err := importProducts(ctx, productUC, f)
	if err != nil {
		log.Fatal().Err(err).Msg("importar productos")
	}
	log.Info().Int("creados", created).Int("omitidos", skipped).Msg("productos importados")
}

// importProducts lee el CSV en ISO-8859-1 y crea cada producto con su cantidad inicial.
func importProducts(ctx context.Context, uc *usecase.ProductUseCase, r io.Reader) (created, skipped int, err error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = 7
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		return 0, 0, fmt.Errorf("leer encabezado: %w", err)
	}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return created, skipped, nil
		}
		if err != nil {
			return created, skipped, fmt.Errorf("línea %d: %w", line, err)
		}
		req, err := productFromRecord(rec)
		if err != nil {
			return created, skipped, fmt.Errorf("línea %d: %w", line, err)
		}
		if _, err := uc.Create(ctx, req); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				continue
			}
			return created, skipped, fmt.Errorf("línea %d: %w", line, err)
		}
		created++
	}
}

func productFromRecord(rec []string) (dto.CreateProductRequest, error) {
	purchase, err := parseMoney(rec[4])
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("precio_compra: %w", err)
	}
	selling, err := parseMoney(rec[5])
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("precio_venta: %w", err)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(rec[6]))
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("cantidad: %w", err)
	}
	return dto.CreateProductRequest{
		Name:            strings.TrimSpace(rec[0]),
		Brand:           strings.TrimSpace(rec[1]),
		Category:        strings.TrimSpace(rec[2]),
		Barcode:         strings.TrimSpace(rec[3]),
		PurchasePrice:   purchase,
		SellingPrice:    selling,
		InitialQuantity: qty,
	}, nil
}

// parseMoney acepta "25000", "25000,50" y "25.000" (punto de miles).
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if strings.Count(s, ".") >= 1 && len(s)-strings.LastIndex(s, ".") == 4 {
		s = strings.ReplaceAll(s, ".", "")
	}
	return decimal.NewFromString(s)
}
