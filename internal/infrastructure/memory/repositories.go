package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
)

var (
	_ repository.ProductRepository       = (*ProductRepository)(nil)
	_ repository.CustomerRepository      = (*CustomerRepository)(nil)
	_ repository.SaleRepository          = (*SaleRepository)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepository)(nil)
	_ repository.UserRepository          = (*UserRepository)(nil)
)

// ── Productos ────────────────────────────────────────────────────────────────

type ProductRepository struct{ s *Store }

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	if p.Barcode != "" {
		if _, ok := r.s.barcodes[p.Barcode]; ok {
			return domain.ErrDuplicate
		}
		r.s.barcodes[p.Barcode] = p.ID
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	r.s.mu.RLock()
	id, ok := r.s.barcodes[barcode]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Barcode != cur.Barcode {
		if p.Barcode != "" {
			if other, ok := r.s.barcodes[p.Barcode]; ok && other != p.ID {
				return domain.ErrDuplicate
			}
			r.s.barcodes[p.Barcode] = p.ID
		}
		if cur.Barcode != "" {
			delete(r.s.barcodes, cur.Barcode)
		}
	}
	cur.Name = p.Name
	cur.Brand = p.Brand
	cur.Model = p.Model
	cur.Category = p.Category
	cur.Barcode = p.Barcode
	cur.Description = p.Description
	cur.SellingPrice = p.SellingPrice
	cur.ReorderThreshold = p.ReorderThreshold
	cur.UpdatedAt = p.UpdatedAt
	r.s.products[p.ID] = cur
	return nil
}

func (r *ProductRepository) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	return page(r.collect(func(p *entity.Product) bool { return p.Active }), limit, offset), nil
}

func (r *ProductRepository) ListLowStock(_ context.Context, threshold int) ([]*entity.Product, error) {
	return r.collect(func(p *entity.Product) bool {
		if !p.Active {
			return false
		}
		if threshold == repository.UseReorderThreshold {
			return p.IsLowStock(p.ReorderThreshold)
		}
		return p.IsLowStock(threshold)
	}), nil
}

func (r *ProductRepository) ListAll(_ context.Context) ([]*entity.Product, error) {
	return r.collect(func(*entity.Product) bool { return true }), nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || !p.Active {
		return domain.ErrNotFound
	}
	p.Active = false
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r *ProductRepository) collect(keep func(*entity.Product) bool) []*entity.Product {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if keep(&p) {
			out = append(out, &p)
		}
	}
	sortProducts(out)
	return out
}

// ── Clientes ─────────────────────────────────────────────────────────────────

type CustomerRepository struct{ s *Store }

func (r *CustomerRepository) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.phones[c.Phone]; ok {
		return domain.ErrDuplicate
	}
	r.s.customers[c.ID] = *c
	r.s.phones[c.Phone] = c.ID
	return nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	r.s.mu.RLock()
	id, ok := r.s.phones[strings.TrimSpace(phone)]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *CustomerRepository) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.customers[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if c.Phone != cur.Phone {
		if other, ok := r.s.phones[c.Phone]; ok && other != c.ID {
			return domain.ErrDuplicate
		}
		delete(r.s.phones, cur.Phone)
		r.s.phones[c.Phone] = c.ID
	}
	cur.Name = c.Name
	cur.Phone = c.Phone
	cur.Email = c.Email
	cur.Address = c.Address
	cur.Notes = c.Notes
	cur.UpdatedAt = c.UpdatedAt
	r.s.customers[c.ID] = cur
	return nil
}

func (r *CustomerRepository) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	out := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		out = append(out, &c)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return page(out, limit, offset), nil
}

// ── Ventas ───────────────────────────────────────────────────────────────────

type SaleRepository struct{ s *Store }

func (r *SaleRepository) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.saleWithItems(id), nil
}

func (r *SaleRepository) ListByCustomer(_ context.Context, customerID string) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Sale, 0)
	for id, sale := range r.s.sales {
		if sale.CustomerID == customerID {
			out = append(out, r.s.saleWithItems(id))
		}
	}
	sortSalesDesc(out)
	return out, nil
}

func (r *SaleRepository) ListByDateRange(_ context.Context, from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	out := make([]*entity.Sale, 0)
	for _, sale := range r.s.sales {
		if !sale.CreatedAt.Before(from) && sale.CreatedAt.Before(to) {
			out = append(out, &sale)
		}
	}
	r.s.mu.RUnlock()
	sortSalesDesc(out)
	return page(out, limit, offset), nil
}

func sortSalesDesc(out []*entity.Sale) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type StockMovementRepository struct{ s *Store }

func (r *StockMovementRepository) SumForProduct(_ context.Context, productID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := 0
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			sum += m.Quantity
		}
	}
	return sum, nil
}

func (r *StockMovementRepository) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return page(r.collect(func(m *entity.StockMovement) bool { return m.ProductID == productID }), limit, offset), nil
}

func (r *StockMovementRepository) ListBySale(_ context.Context, saleID string) ([]*entity.StockMovement, error) {
	return r.collect(func(m *entity.StockMovement) bool { return m.SaleID == saleID }), nil
}

// collect devuelve los movimientos más recientes primero.
func (r *StockMovementRepository) collect(keep func(*entity.StockMovement) bool) []*entity.StockMovement {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.StockMovement, 0)
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if keep(&m) {
			out = append(out, &m)
		}
	}
	return out
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email := strings.ToLower(u.Email)
	if _, ok := r.s.emails[email]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.users[u.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.users[u.ID] = *u
	r.s.emails[email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	id, ok := r.s.emails[strings.ToLower(email)]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, &u)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return page(out, limit, offset), nil
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}
