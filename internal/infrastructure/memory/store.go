// Package memory implementa todos los puertos de persistencia en memoria.
//
// El cierre usa un mutex por producto (y por cliente) tomado en GetForUpdate y liberado al
// terminar la transacción. Las escrituras de la transacción se acumulan aparte y se aplican
// de una vez bajo el lock del store, así que los lectores solo ven estado confirmado.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
)

// Store guarda el estado confirmado.
type Store struct {
	mu        sync.RWMutex
	products  map[string]entity.Product
	barcodes  map[string]string // barcode -> product id
	customers map[string]entity.Customer
	phones    map[string]string // phone -> customer id
	sales     map[string]entity.Sale
	items     map[string][]entity.SaleItem // sale id -> líneas en orden
	movements []entity.StockMovement
	cash      []entity.CashTransaction // libro de caja, solo se agrega
	users     map[string]entity.User
	emails    map[string]string // email -> user id

	locks       *lockTable
	lockTimeout time.Duration
}

// New crea un store vacío. lockTimeout <= 0 espera bloqueos sin límite (salvo el del contexto).
func New(lockTimeout time.Duration) *Store {
	return &Store{
		products:    make(map[string]entity.Product),
		barcodes:    make(map[string]string),
		customers:   make(map[string]entity.Customer),
		phones:      make(map[string]string),
		sales:       make(map[string]entity.Sale),
		items:       make(map[string][]entity.SaleItem),
		users:       make(map[string]entity.User),
		emails:      make(map[string]string),
		locks:       newLockTable(),
		lockTimeout: lockTimeout,
	}
}

func (s *Store) Products() *ProductRepository        { return &ProductRepository{s: s} }
func (s *Store) Customers() *CustomerRepository      { return &CustomerRepository{s: s} }
func (s *Store) Sales() *SaleRepository              { return &SaleRepository{s: s} }
func (s *Store) Movements() *StockMovementRepository { return &StockMovementRepository{s: s} }
func (s *Store) Users() *UserRepository              { return &UserRepository{s: s} }
func (s *Store) Analytics() *AnalyticsRepository     { return &AnalyticsRepository{s: s} }

// saleWithItems arma una copia de la venta con sus líneas. Requiere s.mu tomado.
func (s *Store) saleWithItems(id string) *entity.Sale {
	sale, ok := s.sales[id]
	if !ok {
		return nil
	}
	sale.Items = append([]entity.SaleItem(nil), s.items[id]...)
	return &sale
}

func sortProducts(out []*entity.Product) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
}

func page[T any](all []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []T{}
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
