package memory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-POS/internal/application/checkout"
	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

var _ checkout.TxRunner = (*Store)(nil)

// RunCheckout ejecuta fn con repositorios transaccionales. Las escrituras se aplican
// solo si fn termina sin error; los bloqueos se liberan siempre.
func (s *Store) RunCheckout(ctx context.Context, fn func(
	products repository.ProductStockRepository,
	customers repository.CustomerLedgerRepository,
	sales repository.SaleWriter,
	movements repository.StockMovementAppender,
	cash repository.CashLedgerAppender,
) error) error {
	t := &tx{
		s:            s,
		held:         make(map[string]bool),
		productDelta: make(map[string]int),
		productCost:  make(map[string]decimal.Decimal),
		purchases:    make(map[string]purchase),
	}
	defer t.releaseAll()

	if err := fn(&txProducts{t}, &txCustomers{t}, &txSales{t}, &txMovements{t}, &txCash{t}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t.commit()
	return nil
}

type purchase struct {
	amount decimal.Decimal
	points int
}

// tx acumula las escrituras de una transacción.
type tx struct {
	s         *Store
	held      map[string]bool
	heldOrder []string

	productDelta map[string]int
	productCost  map[string]decimal.Decimal
	purchases    map[string]purchase
	sales        []entity.Sale
	items        []entity.SaleItem
	movements    []entity.StockMovement
	cash         []entity.CashTransaction
}

func (t *tx) lock(ctx context.Context, key string) error {
	if t.held[key] {
		return nil
	}
	if err := t.s.locks.acquire(ctx, key, t.s.lockTimeout); err != nil {
		return err
	}
	t.held[key] = true
	t.heldOrder = append(t.heldOrder, key)
	return nil
}

func (t *tx) releaseAll() {
	for i := len(t.heldOrder) - 1; i >= 0; i-- {
		t.s.locks.release(t.heldOrder[i])
	}
	t.heldOrder = nil
}

func (t *tx) commit() {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, delta := range t.productDelta {
		p := s.products[id]
		p.Quantity += delta
		s.products[id] = p
	}
	for id, cost := range t.productCost {
		p := s.products[id]
		p.PurchasePrice = cost
		s.products[id] = p
	}
	for id, pu := range t.purchases {
		c := s.customers[id]
		c.TotalPurchases = c.TotalPurchases.Add(pu.amount)
		c.LoyaltyPoints += pu.points
		s.customers[id] = c
	}
	for _, sale := range t.sales {
		s.sales[sale.ID] = sale
	}
	for _, it := range t.items {
		s.items[it.SaleID] = append(s.items[it.SaleID], it)
	}
	s.movements = append(s.movements, t.movements...)
	s.cash = append(s.cash, t.cash...)
}

func (t *tx) productExists(id string) bool {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	_, ok := t.s.products[id]
	return ok
}

func (t *tx) saleExists(id string) bool {
	for _, sale := range t.sales {
		if sale.ID == id {
			return true
		}
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	_, ok := t.s.sales[id]
	return ok
}

func productKey(id string) string  { return "product:" + id }
func customerKey(id string) string { return "customer:" + id }

// ── Repositorios transaccionales ─────────────────────────────────────────────

type txProducts struct{ t *tx }

func (r *txProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if err := r.t.lock(ctx, productKey(id)); err != nil {
		return nil, err
	}
	r.t.s.mu.RLock()
	p, ok := r.t.s.products[id]
	r.t.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	p.Quantity += r.t.productDelta[id]
	if cost, ok := r.t.productCost[id]; ok {
		p.PurchasePrice = cost
	}
	return &p, nil
}

func (r *txProducts) ApplyDelta(ctx context.Context, id string, delta int) error {
	if err := r.t.lock(ctx, productKey(id)); err != nil {
		return err
	}
	if !r.t.productExists(id) {
		return notFound("producto", id)
	}
	r.t.productDelta[id] += delta
	return nil
}

func (r *txProducts) UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error {
	if err := r.t.lock(ctx, productKey(id)); err != nil {
		return err
	}
	if !r.t.productExists(id) {
		return notFound("producto", id)
	}
	r.t.productCost[id] = cost
	return nil
}

type txCustomers struct{ t *tx }

func (r *txCustomers) GetForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	if err := r.t.lock(ctx, customerKey(id)); err != nil {
		return nil, err
	}
	r.t.s.mu.RLock()
	c, ok := r.t.s.customers[id]
	r.t.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if pu, ok := r.t.purchases[id]; ok {
		c.TotalPurchases = c.TotalPurchases.Add(pu.amount)
		c.LoyaltyPoints += pu.points
	}
	return &c, nil
}

func (r *txCustomers) ApplyPurchase(ctx context.Context, id string, amount decimal.Decimal, points int) error {
	if err := r.t.lock(ctx, customerKey(id)); err != nil {
		return err
	}
	r.t.s.mu.RLock()
	_, ok := r.t.s.customers[id]
	r.t.s.mu.RUnlock()
	if !ok {
		return notFound("cliente", id)
	}
	pu := r.t.purchases[id]
	pu.amount = pu.amount.Add(amount)
	pu.points += points
	r.t.purchases[id] = pu
	return nil
}

type txSales struct{ t *tx }

func (r *txSales) Insert(_ context.Context, sale *entity.Sale) error {
	if r.t.saleExists(sale.ID) {
		return domain.ErrDuplicate
	}
	header := *sale
	header.Items = nil
	r.t.sales = append(r.t.sales, header)
	return nil
}

func (r *txSales) InsertItem(_ context.Context, item *entity.SaleItem) error {
	if !r.t.saleExists(item.SaleID) {
		return notFound("venta", item.SaleID)
	}
	if !r.t.productExists(item.ProductID) {
		return notFound("producto", item.ProductID)
	}
	r.t.items = append(r.t.items, *item)
	return nil
}

type txMovements struct{ t *tx }

func (r *txMovements) Append(_ context.Context, m *entity.StockMovement) error {
	if !r.t.productExists(m.ProductID) {
		return notFound("producto", m.ProductID)
	}
	if m.SaleID != "" && !r.t.saleExists(m.SaleID) {
		return fmt.Errorf("movimiento referencia venta inexistente %s: %w", m.SaleID, domain.ErrInvalidInput)
	}
	r.t.movements = append(r.t.movements, *m)
	return nil
}

type txCash struct{ t *tx }

func (r *txCash) Append(_ context.Context, c *entity.CashTransaction) error {
	if !c.Amount.IsPositive() {
		return fmt.Errorf("%w: monto de caja %s", domain.ErrInvalidInput, c.Amount)
	}
	if c.SaleID != "" && !r.t.saleExists(c.SaleID) {
		return notFound("venta", c.SaleID)
	}
	r.t.cash = append(r.t.cash, *c)
	return nil
}
