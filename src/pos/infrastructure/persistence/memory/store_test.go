package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_DecrementStockIsConditional(t *testing.T) {
	store := NewStore()
	p := entity.Product{ID: uuid.New(), Name: "Arroz 5kg", Price: decimal.NewFromInt(25), Stock: 3}
	store.PutProduct(p)
	products := store.Products()
	ctx := context.Background()

	require.NoError(t, products.DecrementStock(ctx, p.ID, 2))
	err := products.DecrementStock(ctx, p.ID, 2)
	assert.ErrorIs(t, err, entity.ErrInsufficientStock)

	got, err := products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	assert.ErrorIs(t, products.DecrementStock(ctx, uuid.New(), 1), entity.ErrProductNotFound)
}

func TestProductRepository_ConcurrentDecrementsNeverGoNegative(t *testing.T) {
	store := NewStore()
	p := entity.Product{ID: uuid.New(), Name: "Pão", Price: decimal.NewFromInt(1), Stock: 10}
	store.PutProduct(p)
	products := store.Products()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := products.DecrementStock(context.Background(), p.ID, 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	got, err := products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 0, got.Stock)
}

func TestProductRepository_SearchAndLowStock(t *testing.T) {
	store := NewSeeded()
	products := store.Products()
	ctx := context.Background()

	all, err := products.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "Arroz 5kg", all[0].Name)

	grains, err := products.Search(ctx, "grãos")
	require.NoError(t, err)
	assert.Len(t, grains, 2)

	wildcard, err := products.Search(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, wildcard, "search terms are literal")

	low, err := products.ListLowStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, low)

	require.NoError(t, products.SetStock(ctx, grains[0].ID, 4))
	low, err = products.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, grains[0].ID, low[0].ID)

	assert.ErrorIs(t, products.SetStock(ctx, grains[0].ID, -1), entity.ErrInvalidStockValue)
}

func TestSaleRepository_CreateFindList(t *testing.T) {
	store := NewStore()
	sales := store.Sales()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mk := func(offset time.Duration, pm entity.PaymentMethod) *entity.Sale {
		s := &entity.Sale{
			ID:            uuid.New(),
			CashierID:     uuid.New(),
			TotalAmount:   decimal.NewFromInt(10),
			PaymentMethod: pm,
			CreatedAt:     base.Add(offset),
			Items:         []entity.SaleItem{{ID: uuid.New(), ProductName: "A", Quantity: 1}},
		}
		require.NoError(t, sales.Create(ctx, s))
		return s
	}
	first := mk(0, entity.PaymentCash)
	second := mk(time.Hour, entity.PaymentMpesa)
	mk(48*time.Hour, entity.PaymentCash)

	got, err := sales.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Len(t, got.Items, 1)

	_, err = sales.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, entity.ErrSaleNotFound)

	from, to := base, base.AddDate(0, 0, 1)
	day, err := sales.List(ctx, port.SaleFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, second.ID, day[0].ID, "newest first")

	mpesa := entity.PaymentMpesa
	filtered, err := sales.List(ctx, port.SaleFilter{PaymentMethod: &mpesa})
	require.NoError(t, err)
	require.Len(t, filtered, 1)

	limited, err := sales.List(ctx, port.SaleFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSettingsAndCustomers(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Settings().Upsert(ctx, entity.SettingCompanyName, "Loja"))
	values, err := store.Settings().All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Loja", values[entity.SettingCompanyName])

	c := entity.Customer{ID: uuid.New(), Name: "Ana"}
	store.PutCustomer(c)
	got, err := store.Customers().FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	_, err = store.Customers().FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, entity.ErrCustomerNotFound)
}

func TestCustomerRepository_CreateUpdateSearch(t *testing.T) {
	store := NewStore()
	customers := store.Customers()
	ctx := context.Background()

	email := "carlos@email.com"
	c := &entity.Customer{ID: uuid.New(), Name: "Carlos Lima", Email: &email}
	require.NoError(t, customers.Create(ctx, c))
	require.NoError(t, customers.Create(ctx, &entity.Customer{ID: uuid.New(), Name: "Ana Costa"}))

	found, err := customers.Search(ctx, "CARLOS@")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, c.ID, found[0].ID)

	all, err := customers.Search(ctx, " ")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ana Costa", all[0].Name)

	c.Name = "Carlos A. Lima"
	require.NoError(t, customers.Update(ctx, c))
	got, err := customers.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carlos A. Lima", got.Name)

	err = customers.Update(ctx, &entity.Customer{ID: uuid.New(), Name: "Ninguém"})
	assert.ErrorIs(t, err, entity.ErrCustomerNotFound)
}
