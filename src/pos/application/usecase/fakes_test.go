package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"
	"github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/persistence/memory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type staticSettings struct{ s entity.StoreSettings }

func (f staticSettings) Get() entity.StoreSettings { return f.s }

func defaultSettings() staticSettings { return staticSettings{s: entity.DefaultStoreSettings()} }

// fixture es el escenario de referencia: A (2.50, stock 10) y B (10.00, stock 5)
type fixture struct {
	store *memory.Store
	a, b  entity.Product
}

func newFixture() *fixture {
	store := memory.NewStore()
	a := entity.Product{ID: uuid.New(), Name: "Produto A", Price: d("2.50"), Stock: 10, Category: "Geral"}
	b := entity.Product{ID: uuid.New(), Name: "Produto B", Price: d("10.00"), Stock: 5, Category: "Geral"}
	store.PutProduct(a)
	store.PutProduct(b)
	return &fixture{store: store, a: a, b: b}
}

// referenceCart: A x2 sin descuento, B x1 con 10%
func (f *fixture) referenceCart(t *testing.T) *entity.Cart {
	t.Helper()
	cart := entity.NewCart()
	require.NoError(t, cart.AddItem(f.a, 2))
	require.NoError(t, cart.AddItem(f.b, 1))
	require.NoError(t, cart.SetDiscount(f.b.ID, d("10")))
	return cart
}

func (f *fixture) stockOf(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := f.store.Products().FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func (f *fixture) salesCount(t *testing.T) int {
	t.Helper()
	sales, err := f.store.Sales().List(context.Background(), port.SaleFilter{})
	require.NoError(t, err)
	return len(sales)
}

func referenceInput() SubmitSaleInput {
	return SubmitSaleInput{
		PaymentMethod:  "dinheiro",
		DiscountAmount: d("1.00"),
		TaxRate:        d("17"),
		CashierID:      uuid.New(),
	}
}

var errStoreDown = errors.New("connection reset by peer")

// failingSales falla siempre en Create
type failingSales struct {
	port.SaleRepository
}

func (failingSales) Create(context.Context, *entity.Sale) error { return errStoreDown }

// ctxCheckingSales falla si el contexto de escritura llega cancelado
type ctxCheckingSales struct {
	port.SaleRepository
}

func (r ctxCheckingSales) Create(ctx context.Context, sale *entity.Sale) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.SaleRepository.Create(ctx, sale)
}

// flakyProducts falla al descontar stock del producto indicado
type flakyProducts struct {
	port.ProductRepository
	failOn uuid.UUID
}

func (r flakyProducts) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	if id == r.failOn {
		return errStoreDown
	}
	return r.ProductRepository.DecrementStock(ctx, id, qty)
}

// fakeCommitter simula un almacén transaccional
type fakeCommitter struct {
	port.SaleRepository
	err       error
	committed []*entity.Sale
}

func (c *fakeCommitter) CommitSale(_ context.Context, sale *entity.Sale) error {
	if c.err != nil {
		return c.err
	}
	c.committed = append(c.committed, sale)
	return nil
}

// recordingInvalidator registra los productos invalidados
type recordingInvalidator struct {
	port.ProductRepository
	invalidated []uuid.UUID
}

func (r *recordingInvalidator) Invalidate(_ context.Context, ids ...uuid.UUID) {
	r.invalidated = append(r.invalidated, ids...)
}
