// Package analytics contiene el tablero de la tienda: lecturas sobre ventas confirmadas
// y existencias. Nunca escribe.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/Tienda-POS/internal/application/dto"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

const dashboardTopProducts = 5 // número de productos en el widget del tablero

// StatsCache guarda el tablero ya calculado por día. Es opcional.
type StatsCache interface {
	Get(ctx context.Context, day string) (*dto.DashboardStatsResponse, bool, error)
	Set(ctx context.Context, day string, stats *dto.DashboardStatsResponse) error
}

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). Tolera fotos algo
// desactualizadas: una venta cerrada durante el cálculo puede no aparecer.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         StatsCache
	log           zerolog.Logger
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, cache StatsCache, log zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, cache: cache, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (pruebas).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetStats construye el DashboardStatsResponse.
//
// Seis consultas en paralelo:
//  1. GetSalesSummary(hoy)
//  2. GetSalesSummary(mes)
//  3. GetInventorySummary
//  4. CountCustomers
//  5. GetTopProducts(mes, top 5)
//  6. GetPaymentMethodSummary(hoy)
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	ctx, span := otel.Tracer("github.com/jhoicas/Tienda-POS/internal/application/analytics").
		Start(ctx, "analytics.DashboardStats")
	defer span.End()

	now := uc.now()
	day := now.Format("2006-01-02")

	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, day)
		if err != nil {
			uc.log.Warn().Err(err).Msg("dashboard: cache no disponible")
		} else if ok {
			return cached, nil
		}
	}

	// ── Rangos de fecha [inicio, fin) ──────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type salesResult struct {
		count int
		total decimal.Decimal
		err   error
	}
	type inventoryResult struct {
		sum repository.InventorySummary
		err error
	}
	type countResult struct {
		n   int
		err error
	}
	type topResult struct {
		rows []repository.TopProductResult
		err  error
	}
	type cashResult struct {
		rows []repository.PaymentMethodSummary
		err  error
	}

	todayCh := make(chan salesResult, 1)
	monthCh := make(chan salesResult, 1)
	invCh := make(chan inventoryResult, 1)
	custCh := make(chan countResult, 1)
	topCh := make(chan topResult, 1)
	cashCh := make(chan cashResult, 1)

	go func() {
		n, total, err := uc.analyticsRepo.GetSalesSummary(ctx, todayStart, tomorrow)
		todayCh <- salesResult{n, total, err}
	}()
	go func() {
		n, total, err := uc.analyticsRepo.GetSalesSummary(ctx, monthStart, tomorrow)
		monthCh <- salesResult{n, total, err}
	}()
	go func() {
		sum, err := uc.analyticsRepo.GetInventorySummary(ctx)
		invCh <- inventoryResult{sum, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountCustomers(ctx)
		custCh <- countResult{n, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopProducts(ctx, monthStart, tomorrow, dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetPaymentMethodSummary(ctx, todayStart, tomorrow)
		cashCh <- cashResult{rows, err}
	}()

	today, month, inv, cust, top, cash := <-todayCh, <-monthCh, <-invCh, <-custCh, <-topCh, <-cashCh

	var err error
	switch {
	case today.err != nil:
		err = fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	case month.err != nil:
		err = fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	case inv.err != nil:
		err = fmt.Errorf("dashboard: inventario: %w", inv.err)
	case cust.err != nil:
		err = fmt.Errorf("dashboard: clientes: %w", cust.err)
	case top.err != nil:
		err = fmt.Errorf("dashboard: más vendidos: %w", top.err)
	case cash.err != nil:
		err = fmt.Errorf("dashboard: caja: %w", cash.err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	topDTOs := make([]dto.TopProductDTO, 0, len(top.rows))
	for _, r := range top.rows {
		topDTOs = append(topDTOs, dto.TopProductDTO{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			UnitsSold:   r.UnitsSold,
			Revenue:     r.Revenue.Round(2),
		})
	}

	cashDTOs := make([]dto.PaymentMethodDTO, 0, len(cash.rows))
	for _, r := range cash.rows {
		cashDTOs = append(cashDTOs, dto.PaymentMethodDTO{
			PaymentMethod: r.PaymentMethod,
			Transactions:  r.Transactions,
			Balance:       r.Balance.Round(2),
		})
	}

	stats := &dto.DashboardStatsResponse{
		TodaySalesCount: today.count,
		TodaySales:      today.total.Round(2),
		MonthSalesCount: month.count,
		MonthSales:      month.total.Round(2),
		LowStockCount:   inv.sum.LowStockCount,
		TotalCustomers:  cust.n,
		TotalProducts:   inv.sum.TotalProducts,
		TotalUnits:      inv.sum.TotalUnits,
		StockValue:      inv.sum.StockValue.Round(2),
		TopProducts:     topDTOs,
		PaymentMethods:  cashDTOs,
		DateLabel:       monthLabel(now),
		GeneratedAt:     now,
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, day, stats); err != nil {
			uc.log.Warn().Err(err).Msg("dashboard: no se pudo guardar en cache")
		}
	}
	return stats, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
