package checkout_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-POS/internal/application/checkout"
	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/domain/loyalty"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
	"github.com/jhoicas/Tienda-POS/internal/domain/sale"
	"github.com/jhoicas/Tienda-POS/internal/infrastructure/memory"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	return memory.New(2 * time.Second)
}

func newCoordinator(store checkout.TxRunner, settings checkout.Settings) *checkout.Coordinator {
	return checkout.NewCoordinator(store, settings, nil, zerolog.Nop())
}

func seedProduct(t *testing.T, store *memory.Store, id, price string, qty int) {
	t.Helper()
	p, err := entity.NewProduct(id, "Producto "+id, "Marca", "Accesorios", dec("1"), dec(price), qty, 2, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Products().Create(context.Background(), p))
}

func seedCustomer(t *testing.T, store *memory.Store, id, purchases string, points int) {
	t.Helper()
	c, err := entity.NewCustomer(id, "Cliente "+id, "300"+id, time.Now())
	require.NoError(t, err)
	c.TotalPurchases = dec(purchases)
	c.LoyaltyPoints = points
	require.NoError(t, store.Customers().Create(context.Background(), c))
}

func quantity(t *testing.T, store *memory.Store, id string) int {
	t.Helper()
	p, err := store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func salesCount(t *testing.T, store *memory.Store) int {
	t.Helper()
	all, err := store.Sales().ListByDateRange(context.Background(), time.Time{}, time.Now().Add(time.Hour), 0, 0)
	require.NoError(t, err)
	return len(all)
}

// assertReconciled verifica quantity == initial + Σ movimientos para todos los productos.
func assertReconciled(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	products, err := store.Products().ListAll(ctx)
	require.NoError(t, err)
	for _, p := range products {
		sum, err := store.Movements().SumForProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.InitialQuantity+sum, p.Quantity, "producto %s desconciliado", p.ID)
	}
}

func cartOf(lines ...any) *sale.Cart {
	c := sale.NewCart()
	for i := 0; i+1 < len(lines); i += 2 {
		c.AddItem(lines[i].(string), lines[i+1].(int))
	}
	return c
}

// ─────────────────────────────────────────────────────────────────────────────
// Commit
// ─────────────────────────────────────────────────────────────────────────────

func TestCommit_TwoLinesWithDiscount(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "100", 10)
	seedProduct(t, store, "B", "50", 10)
	coord := newCoordinator(store, checkout.Settings{})

	cart := cartOf("A", 2, "B", 1)
	cart.Discount = dec("20")
	s, err := coord.CommitSale(context.Background(), cart)
	require.NoError(t, err)

	assert.True(t, dec("230").Equal(s.Total), "total: %s", s.Total)
	assert.True(t, dec("250").Equal(s.Subtotal))
	assert.Equal(t, 8, quantity(t, store, "A"))
	assert.Equal(t, 9, quantity(t, store, "B"))

	movs, err := store.Movements().ListBySale(context.Background(), s.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	deltas := map[string]int{}
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeSale, m.Type)
		deltas[m.ProductID] = m.Quantity
	}
	assert.Equal(t, map[string]int{"A": -2, "B": -1}, deltas)

	stored, err := store.Sales().GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 2)
	assert.True(t, stored.Subtotal.Equal(stored.ItemsTotal()))
	assert.Equal(t, "A", stored.Items[0].ProductID)
	assert.Equal(t, entity.PaymentCash, stored.PaymentMethod)
	assertReconciled(t, store)
}

func TestCommit_ReturnsSaleID(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "10", 1)
	coord := newCoordinator(store, checkout.Settings{})

	id, err := coord.Commit(context.Background(), cartOf("A", 1))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	s, err := store.Sales().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Contains(t, s.InvoiceNumber, "V-")
}

func TestCommit_InsufficientStock(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "100", 3)
	coord := newCoordinator(store, checkout.Settings{})

	_, err := coord.Commit(context.Background(), cartOf("A", 5))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "A", stockErr.ProductID)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 3, stockErr.Available)

	assert.Equal(t, 3, quantity(t, store, "A"))
	assert.Equal(t, 0, salesCount(t, store))
	assertReconciled(t, store)
}

func TestCommit_InsufficientStockOnSecondLineWritesNothing(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "100", 10)
	seedProduct(t, store, "B", "50", 0)
	coord := newCoordinator(store, checkout.Settings{})

	_, err := coord.Commit(context.Background(), cartOf("A", 1, "B", 1))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, quantity(t, store, "A"))
	assert.Equal(t, 0, salesCount(t, store))
}

func TestCommit_EmptyCart(t *testing.T) {
	store := newStore(t)
	coord := newCoordinator(store, checkout.Settings{})

	_, err := coord.Commit(context.Background(), sale.NewCart())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = coord.Commit(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Equal(t, 0, salesCount(t, store))
}

func TestCommit_InvalidQuantity(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "100", 10)
	coord := newCoordinator(store, checkout.Settings{})

	for _, qty := range []int{0, -2} {
		_, err := coord.Commit(context.Background(), cartOf("A", qty))
		require.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d", qty)
		var qErr *domain.InvalidQuantityError
		require.True(t, errors.As(err, &qErr))
		assert.Equal(t, qty, qErr.Quantity)
	}
	assert.Equal(t, 10, quantity(t, store, "A"))
}

func TestCommit_InvalidTotal(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "FREE", "0", 10)
	seedProduct(t, store, "A", "10", 10)
	coord := newCoordinator(store, checkout.Settings{})

	_, err := coord.Commit(context.Background(), cartOf("FREE", 1))
	assert.ErrorIs(t, err, domain.ErrInvalidTotal)

	cart := cartOf("A", 1)
	cart.Discount = dec("10")
	_, err = coord.Commit(context.Background(), cart)
	assert.ErrorIs(t, err, domain.ErrInvalidTotal, "descuento igual al subtotal deja total cero")

	cart = cartOf("A", 1)
	cart.Discount = dec("-5")
	_, err = coord.Commit(context.Background(), cart)
	assert.ErrorIs(t, err, domain.ErrInvalidTotal)

	assert.Equal(t, 10, quantity(t, store, "A"))
	assert.Equal(t, 0, salesCount(t, store))
}

func TestCommit_StockCheckedBeforeTotal(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "FREE", "0", 1)
	coord := newCoordinator(store, checkout.Settings{})

	_, err := coord.Commit(context.Background(), cartOf("FREE", 2))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCommit_RoundsDiscountAndTaxToCents(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "100", 10)
	seedCustomer(t, store, "C1", "0", 0)
	coord := newCoordinator(store, checkout.Settings{})

	cart := cartOf("A", 1)
	cart.CustomerID = "C1"
	cart.Discount = dec("0.005")
	cart.Tax = dec("0.004")
	s, err := coord.CommitSale(context.Background(), cart)
	require.NoError(t, err)

	assert.True(t, dec("0.01").Equal(s.Discount), "descuento: %s", s.Discount)
	assert.True(t, dec("0").Equal(s.Tax), "impuesto: %s", s.Tax)
	assert.True(t, dec("99.99").Equal(s.Total), "total: %s", s.Total)
	assert.True(t, s.Total.Equal(s.Subtotal.Sub(s.Discount).Add(s.Tax)))

	stored, err := store.Sales().GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(stored.Subtotal.Sub(stored.Discount).Add(stored.Tax)))

	c, err := store.Customers().GetByID(context.Background(), "C1")
	require.NoError(t, err)
	assert.True(t, dec("99.99").Equal(c.TotalPurchases), "acumulado: %s", c.TotalPurchases)
}

func TestCommit_SubCentTotalIsInvalid(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "FREE", "0", 10)
	coord := newCoordinator(store, checkout.Settings{})

	cart := cartOf("FREE", 1)
	cart.Tax = dec("0.004")
	_, err := coord.Commit(context.Background(), cart)
	assert.ErrorIs(t, err, domain.ErrInvalidTotal)
	assert.Equal(t, 10, quantity(t, store, "FREE"))
	assert.Equal(t, 0, salesCount(t, store))
}

func TestCommit_RecordsPaymentInCashLedger(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "100", 10)
	coord := newCoordinator(store, checkout.Settings{})

	cart := cartOf("A", 1)
	cart.PaymentMethod = entity.PaymentTransfer
	cart.Tax = dec("19")
	_, err := coord.Commit(context.Background(), cart)
	require.NoError(t, err)
	_, err = coord.Commit(context.Background(), cartOf("A", 2))
	require.NoError(t, err)

	summary, err := store.Analytics().GetPaymentMethodSummary(context.Background(), time.Time{}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, entity.PaymentCash, summary[0].PaymentMethod)
	assert.True(t, dec("200").Equal(summary[0].Balance))
	assert.Equal(t, entity.PaymentTransfer, summary[1].PaymentMethod)
	assert.Equal(t, 1, summary[1].Transactions)
	assert.True(t, dec("119").Equal(summary[1].Balance))
}

func TestCommit_UnknownOrDeletedProduct(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "GONE", "10", 5)
	require.NoError(t, store.Products().Delete(context.Background(), "GONE"))
	coord := newCoordinator(store, checkout.Settings{})

	_, err := coord.Commit(context.Background(), cartOf("NOPE", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = coord.Commit(context.Background(), cartOf("GONE", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 5, quantity(t, store, "GONE"))
}

func TestCommit_UnknownCustomer(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "10", 5)
	coord := newCoordinator(store, checkout.Settings{})

	cart := cartOf("A", 1)
	cart.CustomerID = "fantasma"
	_, err := coord.Commit(context.Background(), cart)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 5, quantity(t, store, "A"))
}

func TestCommit_CustomerLoyalty(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "55", 4)
	seedCustomer(t, store, "C1", "100", 10)
	coord := newCoordinator(store, checkout.Settings{})

	cart := cartOf("A", 1)
	cart.CustomerID = "C1"
	id, err := coord.Commit(context.Background(), cart)
	require.NoError(t, err)

	c, err := store.Customers().GetByID(context.Background(), "C1")
	require.NoError(t, err)
	assert.True(t, dec("155").Equal(c.TotalPurchases), "total compras: %s", c.TotalPurchases)
	assert.Equal(t, 15, c.LoyaltyPoints)

	history, err := store.Sales().ListByCustomer(context.Background(), "C1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, id, history[0].ID)
	assert.True(t, dec("55").Equal(history[0].ItemsTotal()))
	assert.True(t, history[0].Total.Equal(history[0].ItemsTotal()))
}

func TestCommit_CustomLoyaltyPolicy(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "100", 4)
	seedCustomer(t, store, "C1", "0", 0)
	coord := newCoordinator(store, checkout.Settings{
		Loyalty: loyalty.PolicyFunc(func(decimal.Decimal) int { return 3 }),
	})

	cart := cartOf("A", 1)
	cart.CustomerID = "C1"
	_, err := coord.Commit(context.Background(), cart)
	require.NoError(t, err)

	c, err := store.Customers().GetByID(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, 3, c.LoyaltyPoints)
}

func TestCommit_UsesCurrentSellingPrice(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "100", 4)
	coord := newCoordinator(store, checkout.Settings{})

	cart := sale.NewCart()
	cart.AddPricedItem("A", 2, dec("1"))
	s, err := coord.CommitSale(context.Background(), cart)
	require.NoError(t, err)
	require.Len(t, s.Items, 1)
	assert.True(t, dec("100").Equal(s.Items[0].UnitPrice))
	assert.True(t, dec("200").Equal(s.Total))
}

func TestCommit_AllowNegativeStock(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "10", 3)
	coord := newCoordinator(store, checkout.Settings{AllowNegativeStock: true})

	_, err := coord.Commit(context.Background(), cartOf("A", 5))
	require.NoError(t, err)
	assert.Equal(t, -2, quantity(t, store, "A"))
	assertReconciled(t, store)
}

// ─────────────────────────────────────────────────────────────────────────────
// Atomicidad
// ─────────────────────────────────────────────────────────────────────────────

type failingRunner struct {
	inner  checkout.TxRunner
	failOn int
}

func (r *failingRunner) RunCheckout(ctx context.Context, fn func(
	repository.ProductStockRepository,
	repository.CustomerLedgerRepository,
	repository.SaleWriter,
	repository.StockMovementAppender,
	repository.CashLedgerAppender,
) error) error {
	return r.inner.RunCheckout(ctx, func(
		p repository.ProductStockRepository,
		c repository.CustomerLedgerRepository,
		s repository.SaleWriter,
		m repository.StockMovementAppender,
		cash repository.CashLedgerAppender,
	) error {
		return fn(p, c, s, &failingAppender{inner: m, failOn: r.failOn}, cash)
	})
}

type failingAppender struct {
	inner  repository.StockMovementAppender
	failOn int
	calls  int
}

func (a *failingAppender) Append(ctx context.Context, m *entity.StockMovement) error {
	a.calls++
	if a.calls == a.failOn {
		return errors.New("disco lleno")
	}
	return a.inner.Append(ctx, m)
}

func TestCommit_StorageFailureRollsBackEverything(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "100", 10)
	seedProduct(t, store, "B", "50", 10)
	seedCustomer(t, store, "C1", "100", 10)
	coord := newCoordinator(&failingRunner{inner: store, failOn: 2}, checkout.Settings{})

	cart := cartOf("A", 2, "B", 1)
	cart.CustomerID = "C1"
	_, err := coord.Commit(context.Background(), cart)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCommitFailed)

	var commitErr *domain.CommitFailedError
	require.True(t, errors.As(err, &commitErr))
	assert.Contains(t, commitErr.Err.Error(), "disco lleno")

	assert.Equal(t, 10, quantity(t, store, "A"))
	assert.Equal(t, 10, quantity(t, store, "B"))
	assert.Equal(t, 0, salesCount(t, store))
	for _, id := range []string{"A", "B"} {
		sum, err := store.Movements().SumForProduct(context.Background(), id)
		require.NoError(t, err)
		assert.Zero(t, sum)
	}
	c, err := store.Customers().GetByID(context.Background(), "C1")
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(c.TotalPurchases))
	assert.Equal(t, 10, c.LoyaltyPoints)
	cash, err := store.Analytics().GetPaymentMethodSummary(context.Background(), time.Time{}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, cash)

	// Los bloqueos se liberaron: una venta posterior pasa.
	_, err = newCoordinator(store, checkout.Settings{}).Commit(context.Background(), cart)
	require.NoError(t, err)
	assertReconciled(t, store)
}

// ─────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ─────────────────────────────────────────────────────────────────────────────

func TestCommit_ConcurrentLastUnit(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "100", 1)
	coord := newCoordinator(store, checkout.Settings{})

	start := make(chan struct{})
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = coord.Commit(context.Background(), cartOf("A", 1))
		}(i)
	}
	close(start)
	wg.Wait()

	ok, short := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			short++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, short)
	assert.Equal(t, 0, quantity(t, store, "A"))
	assert.Equal(t, 1, salesCount(t, store))
}

func TestCommit_ConcurrentLoadKeepsInvariants(t *testing.T) {
	store := newStore(t)
	ids := []string{"P1", "P2", "P3", "P4", "P5"}
	for _, id := range ids {
		seedProduct(t, store, id, "10", 15)
	}
	seedCustomer(t, store, "C1", "0", 0)
	coord := newCoordinator(store, checkout.Settings{})

	var wg sync.WaitGroup
	var mu sync.Mutex
	committedTotal := decimal.Zero
	for w := 0; w < 40; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))
			cart := sale.NewCart()
			cart.CustomerID = "C1"
			for _, i := range rnd.Perm(len(ids))[:1+rnd.Intn(3)] {
				cart.AddItem(ids[i], 1+rnd.Intn(3))
			}
			s, err := coord.CommitSale(context.Background(), cart)
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				return
			}
			mu.Lock()
			committedTotal = committedTotal.Add(s.Total)
			mu.Unlock()
		}(int64(w))
	}
	wg.Wait()

	for _, id := range ids {
		assert.GreaterOrEqual(t, quantity(t, store, id), 0, "producto %s quedó negativo", id)
	}
	assertReconciled(t, store)

	c, err := store.Customers().GetByID(context.Background(), "C1")
	require.NoError(t, err)
	assert.True(t, committedTotal.Equal(c.TotalPurchases), "acumulado %s, esperado %s", c.TotalPurchases, committedTotal)
}

func TestCommit_DisjointProductsDoNotWaitAndSharedOneTimesOut(t *testing.T) {
	store := memory.New(100 * time.Millisecond)
	seedProduct(t, store, "A", "10", 5)
	seedProduct(t, store, "B", "10", 5)
	coord := newCoordinator(store, checkout.Settings{})

	locked := make(chan struct{})
	release := make(chan struct{})
	holderDone := make(chan error, 1)
	go func() {
		holderDone <- store.RunCheckout(context.Background(), func(
			p repository.ProductStockRepository,
			_ repository.CustomerLedgerRepository,
			_ repository.SaleWriter,
			_ repository.StockMovementAppender,
			_ repository.CashLedgerAppender,
		) error {
			if _, err := p.GetForUpdate(context.Background(), "A"); err != nil {
				return err
			}
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	_, err := coord.Commit(context.Background(), cartOf("B", 1))
	require.NoError(t, err, "un producto distinto no debe esperar el bloqueo de A")

	_, err = coord.Commit(context.Background(), cartOf("A", 1, "B", 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockTimeout)
	assert.True(t, domain.IsRetryable(err))

	close(release)
	require.NoError(t, <-holderDone)

	assert.Equal(t, 5, quantity(t, store, "A"))
	assert.Equal(t, 4, quantity(t, store, "B"))

	_, err = coord.Commit(context.Background(), cartOf("A", 1))
	require.NoError(t, err, "tras liberar el bloqueo la venta debe pasar")
	assertReconciled(t, store)
}

func TestCommit_ContextDeadlineWhileWaitingIsLockTimeout(t *testing.T) {
	store := memory.New(0)
	seedProduct(t, store, "A", "10", 5)
	coord := newCoordinator(store, checkout.Settings{})

	locked := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = store.RunCheckout(context.Background(), func(
			p repository.ProductStockRepository,
			_ repository.CustomerLedgerRepository,
			_ repository.SaleWriter,
			_ repository.StockMovementAppender,
			_ repository.CashLedgerAppender,
		) error {
			_, _ = p.GetForUpdate(context.Background(), "A")
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := coord.Commit(ctx, cartOf("A", 1))
	assert.ErrorIs(t, err, domain.ErrLockTimeout)
}

// ─────────────────────────────────────────────────────────────────────────────
// Eventos
// ─────────────────────────────────────────────────────────────────────────────

type recordingPublisher struct {
	mu     sync.Mutex
	events []checkout.SaleCommitted
	err    error
}

func (p *recordingPublisher) PublishSaleCommitted(_ context.Context, evt checkout.SaleCommitted) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func TestCommit_PublishesEventAfterCommit(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "100", 5)
	seedCustomer(t, store, "C1", "0", 0)
	pub := &recordingPublisher{}
	coord := checkout.NewCoordinator(store, checkout.Settings{}, pub, zerolog.Nop())

	cart := cartOf("A", 2)
	cart.CustomerID = "C1"
	id, err := coord.Commit(context.Background(), cart)
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	evt := pub.events[0]
	assert.Equal(t, id, evt.SaleID)
	assert.Equal(t, 20, evt.LoyaltyPoints)
	require.Len(t, evt.Items, 1)
	assert.Equal(t, 2, evt.Items[0].Quantity)

	_, err = coord.Commit(context.Background(), cartOf("A", 10))
	require.Error(t, err)
	assert.Len(t, pub.events, 1, "una venta rechazada no publica")
}

func TestCommit_PublishFailureDoesNotFailSale(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "A", "100", 5)
	pub := &recordingPublisher{err: fmt.Errorf("broker caído")}
	coord := checkout.NewCoordinator(store, checkout.Settings{}, pub, zerolog.Nop())

	_, err := coord.Commit(context.Background(), cartOf("A", 1))
	require.NoError(t, err)
	assert.Equal(t, 4, quantity(t, store, "A"))
}
