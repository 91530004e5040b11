package checkout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/domain/loyalty"
	"github.com/jhoicas/Tienda-POS/internal/domain/repository"
	"github.com/jhoicas/Tienda-POS/internal/domain/sale"
)

const tracerName = "github.com/jhoicas/Tienda-POS/internal/application/checkout"

// Settings son los parámetros de negocio del cierre. Se fijan al construir el coordinador.
type Settings struct {
	AllowNegativeStock bool
	Loyalty            loyalty.Policy // nil = loyalty.Default()
}

// Coordinator es el único escritor de ventas, existencias, libro de movimientos
// y acumulados de clientes. Cada operación corre en una sola transacción.
type Coordinator struct {
	txRunner  TxRunner
	settings  Settings
	publisher EventPublisher
	log       zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewCoordinator construye el coordinador. publisher puede ser nil.
func NewCoordinator(txRunner TxRunner, settings Settings, publisher EventPublisher, log zerolog.Logger) *Coordinator {
	if settings.Loyalty == nil {
		settings.Loyalty = loyalty.Default()
	}
	return &Coordinator{
		txRunner:  txRunner,
		settings:  settings,
		publisher: publisher,
		log:       log,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj usado para fechar ventas y movimientos.
func (c *Coordinator) WithClock(now func() time.Time) *Coordinator {
	c.now = now
	return c
}

// Commit confirma el carrito y devuelve el id de la venta.
func (c *Coordinator) Commit(ctx context.Context, cart *sale.Cart) (string, error) {
	s, err := c.CommitSale(ctx, cart)
	if err != nil {
		return "", err
	}
	return s.ID, nil
}

// CommitSale valida el carrito y, en una sola transacción, inserta la venta y sus líneas,
// descuenta existencias, registra un movimiento por línea, asienta el cobro en el libro de caja
// y acumula compras y puntos del cliente.
//
// Orden de validación: carrito vacío, cantidades, existencias (bajo bloqueo), total.
// Los productos se bloquean en orden ascendente de id y después el cliente.
func (c *Coordinator) CommitSale(ctx context.Context, cart *sale.Cart) (*entity.Sale, error) {
	ctx, span := c.tracer.Start(ctx, "checkout.Commit")
	defer span.End()

	lines, err := validateLines(cart)
	if err != nil {
		return nil, c.fail(span, err)
	}
	if err := validatePayment(cart); err != nil {
		return nil, c.fail(span, err)
	}
	span.SetAttributes(attribute.Int("cart.lines", len(lines)))

	now := c.now()
	saleID := uuid.New().String()
	var committed *entity.Sale
	var awarded int

	err = c.txRunner.RunCheckout(ctx, func(
		products repository.ProductStockRepository,
		customers repository.CustomerLedgerRepository,
		sales repository.SaleWriter,
		movements repository.StockMovementAppender,
		cash repository.CashLedgerAppender,
	) error {
		locked, err := lockProducts(ctx, products, lines)
		if err != nil {
			return err
		}

		// Revalidar con la existencia bloqueada, no con una lectura previa.
		if !c.settings.AllowNegativeStock {
			for _, l := range lines {
				p := locked[l.ProductID]
				if l.Quantity > p.Quantity {
					return &domain.InsufficientStockError{ProductID: p.ID, Requested: l.Quantity, Available: p.Quantity}
				}
			}
		}

		s := &entity.Sale{
			ID:            saleID,
			InvoiceNumber: sale.InvoiceNumber(saleID, now),
			CustomerID:    cart.CustomerID,
			Discount:      cart.Discount,
			Tax:           cart.Tax,
			PaymentMethod: paymentMethod(cart.PaymentMethod),
			PaymentStatus: entity.PaymentStatusPaid,
			Notes:         cart.Notes,
			CreatedBy:     cart.CashierID,
			CreatedAt:     now,
		}
		subtotal := decimal.Zero
		for i, l := range lines {
			price := locked[l.ProductID].SellingPrice.Round(moneyScale)
			item := entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: l.ProductID,
				Position:  i + 1,
				Quantity:  l.Quantity,
				UnitPrice: price,
				LineTotal: price.Mul(decimal.NewFromInt(int64(l.Quantity))),
			}
			subtotal = subtotal.Add(item.LineTotal)
			s.Items = append(s.Items, item)
		}
		s.Subtotal = subtotal
		if err := validateTotal(s); err != nil {
			return err
		}

		var customer *entity.Customer
		if s.CustomerID != "" {
			customer, err = customers.GetForUpdate(ctx, s.CustomerID)
			if err != nil {
				return fmt.Errorf("bloquear cliente %s: %w", s.CustomerID, err)
			}
			if customer == nil {
				return fmt.Errorf("cliente %s: %w", s.CustomerID, domain.ErrNotFound)
			}
		}

		if err := sales.Insert(ctx, s); err != nil {
			return fmt.Errorf("insertar venta: %w", err)
		}
		for i := range s.Items {
			item := &s.Items[i]
			if err := sales.InsertItem(ctx, item); err != nil {
				return fmt.Errorf("insertar línea %d: %w", item.Position, err)
			}
			mov := &entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: item.ProductID,
				Type:      entity.MovementTypeSale,
				Quantity:  -item.Quantity,
				SaleID:    saleID,
				Notes:     s.InvoiceNumber,
				CreatedAt: now,
				CreatedBy: s.CreatedBy,
			}
			if err := applyMovement(ctx, products, movements, mov); err != nil {
				return err
			}
		}

		payment := &entity.CashTransaction{
			ID:            uuid.New().String(),
			Type:          entity.CashTransactionIn,
			PaymentMethod: s.PaymentMethod,
			Amount:        s.Total,
			SaleID:        saleID,
			Description:   "Venta " + s.InvoiceNumber,
			CreatedBy:     s.CreatedBy,
			CreatedAt:     now,
		}
		if err := cash.Append(ctx, payment); err != nil {
			return fmt.Errorf("registrar cobro: %w", err)
		}

		if customer != nil {
			awarded = c.settings.Loyalty.Points(s.Total)
			if err := customers.ApplyPurchase(ctx, customer.ID, s.Total, awarded); err != nil {
				return fmt.Errorf("acumular compra cliente %s: %w", customer.ID, err)
			}
		}
		committed = s
		return nil
	})
	if err != nil {
		return nil, c.fail(span, err)
	}

	span.SetAttributes(
		attribute.String("sale.id", committed.ID),
		attribute.String("sale.total", committed.Total.StringFixed(2)),
	)
	c.log.Debug().
		Str("sale_id", committed.ID).
		Str("invoice", committed.InvoiceNumber).
		Str("total", committed.Total.StringFixed(2)).
		Int("lines", len(committed.Items)).
		Msg("venta confirmada")
	c.publish(ctx, committed, awarded)
	return committed, nil
}

// validateLines aplica las validaciones que no requieren leer la base: carrito vacío y cantidades.
func validateLines(cart *sale.Cart) ([]sale.Line, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	lines := cart.Lines()
	for _, l := range lines {
		if l.ProductID == "" {
			return nil, fmt.Errorf("%w: línea sin producto", domain.ErrInvalidInput)
		}
		if l.Quantity <= 0 {
			return nil, &domain.InvalidQuantityError{ProductID: l.ProductID, Quantity: l.Quantity}
		}
	}
	return lines, nil
}

// lockProducts bloquea cada producto en orden ascendente de id para evitar interbloqueos
// entre carritos que comparten productos.
func lockProducts(ctx context.Context, products repository.ProductStockRepository, lines []sale.Line) (map[string]*entity.Product, error) {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	sort.Strings(ids)

	locked := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if _, ok := locked[id]; ok {
			continue
		}
		p, err := products.GetForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("bloquear producto %s: %w", id, err)
		}
		if p == nil || !p.Active {
			return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		locked[id] = p
	}
	return locked, nil
}

// moneyScale son los decimales con que se guardan los importes de la venta (NUMERIC(14,2)).
const moneyScale = 2

// validateTotal redondea descuento e impuesto a centavos y calcula el total con esos valores,
// así la fila guardada cumple Total = Subtotal - Discount + Tax.
func validateTotal(s *entity.Sale) error {
	if s.Discount.IsNegative() {
		return &domain.InvalidTotalError{Total: s.Discount, Reason: "descuento negativo"}
	}
	if s.Tax.IsNegative() {
		return &domain.InvalidTotalError{Total: s.Tax, Reason: "impuesto negativo"}
	}
	s.Discount = s.Discount.Round(moneyScale)
	s.Tax = s.Tax.Round(moneyScale)
	s.Total = sale.ComputeTotal(s.Subtotal, s.Discount, s.Tax)
	if !s.Total.IsPositive() {
		return &domain.InvalidTotalError{Total: s.Total}
	}
	return nil
}

func paymentMethod(m string) string {
	if m == "" {
		return entity.PaymentCash
	}
	return m
}

func validatePayment(cart *sale.Cart) error {
	if m := paymentMethod(cart.PaymentMethod); !entity.IsValidPaymentMethod(m) {
		return fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, m)
	}
	return nil
}

func (c *Coordinator) publish(ctx context.Context, s *entity.Sale, points int) {
	if c.publisher == nil {
		return
	}
	evt := SaleCommitted{
		SaleID:        s.ID,
		InvoiceNumber: s.InvoiceNumber,
		CustomerID:    s.CustomerID,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		LoyaltyPoints: points,
		OccurredAt:    s.CreatedAt,
	}
	for _, it := range s.Items {
		evt.Items = append(evt.Items, SaleCommittedItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	if err := c.publisher.PublishSaleCommitted(ctx, evt); err != nil {
		c.log.Warn().Err(err).Str("sale_id", s.ID).Msg("no se pudo publicar evento de venta")
	}
}

// fail clasifica el error y lo registra en el span.
func (c *Coordinator) fail(span trace.Span, err error) error {
	err = classify(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// classify deja pasar los errores de validación, negocio y bloqueo;
// cualquier otro fallo de almacenamiento se envuelve en CommitFailedError.
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidTotal),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrLockTimeout),
		errors.Is(err, domain.ErrCommitFailed):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return &domain.LockTimeoutError{Err: err}
	}
	return &domain.CommitFailedError{Err: err}
}
