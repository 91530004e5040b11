package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-POS/internal/application/checkout"
	"github.com/jhoicas/Tienda-POS/internal/application/sales"
	"github.com/jhoicas/Tienda-POS/internal/domain"
	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	"github.com/jhoicas/Tienda-POS/internal/domain/sale"
	"github.com/jhoicas/Tienda-POS/internal/infrastructure/memory"
)

type captureGenerator struct{ got sales.ReceiptData }

func (g *captureGenerator) GenerateReceipt(_ context.Context, data sales.ReceiptData) ([]byte, error) {
	g.got = data
	return []byte("%PDF-fake"), nil
}

func TestDownloadReceipt_ResolvesNamesAndCustomer(t *testing.T) {
	ctx := context.Background()
	store := memory.New(time.Second)
	p, err := entity.NewProduct("P1", "Audífonos", "Sony", "Audio", decimal.NewFromInt(30), decimal.NewFromInt(60), 5, 1, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Products().Create(ctx, p))
	c, err := entity.NewCustomer("C1", "Ana", "300", time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Customers().Create(ctx, c))

	coord := checkout.NewCoordinator(store, checkout.Settings{}, nil, zerolog.Nop())
	cart := sale.NewCart()
	cart.CustomerID = "C1"
	cart.AddItem("P1", 2)
	s, err := coord.CommitSale(ctx, cart)
	require.NoError(t, err)

	// Eliminado después de vender: el comprobante conserva el nombre.
	require.NoError(t, store.Products().Delete(ctx, "P1"))

	gen := &captureGenerator{}
	uc := sales.NewReceiptUseCase(store.Sales(), store.Customers(), store.Products(), gen, "Tienda Central")
	pdf, filename, err := uc.DownloadReceipt(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, s.InvoiceNumber+".pdf", filename)

	require.NotNil(t, gen.got.Customer)
	assert.Equal(t, "Ana", gen.got.Customer.Name)
	assert.Equal(t, "Tienda Central", gen.got.ShopName)
	require.Len(t, gen.got.Lines, 1)
	assert.Equal(t, "Audífonos", gen.got.Lines[0].ProductName)
	assert.True(t, decimal.NewFromInt(120).Equal(gen.got.Lines[0].LineTotal))
}

func TestDownloadReceipt_NotFound(t *testing.T) {
	store := memory.New(time.Second)
	uc := sales.NewReceiptUseCase(store.Sales(), store.Customers(), store.Products(), &captureGenerator{}, "Tienda")
	_, _, err := uc.DownloadReceipt(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
