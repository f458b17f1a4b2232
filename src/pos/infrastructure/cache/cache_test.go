package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/persistence/memory"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis levanta un miniredis para el test
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func seededProduct(store *memory.Store, stock int) entity.Product {
	p := entity.Product{ID: uuid.New(), Name: "Leite Integral 1L", Price: decimal.RequireFromString("4.20"), Stock: stock, Category: "Laticínios"}
	store.PutProduct(p)
	return p
}

func TestProductCache_ReadThroughAndInvalidate(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := memory.NewStore()
	p := seededProduct(store, 30)

	c := NewProductCache(store.Products(), client)
	ctx := context.Background()

	got, err := c.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Stock)
	assert.True(t, mr.Exists(DefaultProductPrefix+p.ID.String()))

	// Segunda lectura sale de Redis
	got, err = c.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(p.Price))
	assert.Equal(t, int64(1), c.Stats()["hits"])

	require.NoError(t, c.DecrementStock(ctx, p.ID, 5))
	assert.False(t, mr.Exists(DefaultProductPrefix+p.ID.String()))

	got, err = c.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Stock)
}

func TestProductCache_InvalidateAfterExternalDecrement(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := memory.NewStore()
	p := seededProduct(store, 10)

	c := NewProductCache(store.Products(), client, WithProductPrefix("test:"))
	ctx := context.Background()

	_, err := c.FindByID(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, store.Products().DecrementStock(ctx, p.ID, 4))
	c.Invalidate(ctx, p.ID)
	assert.False(t, mr.Exists("test:"+p.ID.String()))

	got, err := c.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Stock)
}

func TestProductCache_DegradesWhenRedisIsDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := memory.NewStore()
	p := seededProduct(store, 3)

	c := NewProductCache(store.Products(), client)
	mr.Close()

	got, err := c.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = c.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entity.ErrProductNotFound)
}

type failingSettingsRepo struct{}

func (failingSettingsRepo) All(context.Context) (map[string]string, error) {
	return nil, errors.New("connection refused")
}

func (failingSettingsRepo) Upsert(context.Context, string, string) error {
	return errors.New("connection refused")
}

func TestSettingsCache_LoadAndUpdate(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Settings().Upsert(ctx, entity.SettingCurrencySymbol, "R$"))

	c := NewSettingsCache(store.Settings())
	assert.Equal(t, "MT", c.Get().CurrencySymbol, "defaults before first load")

	require.NoError(t, c.Load(ctx))
	assert.Equal(t, "R$", c.Get().CurrencySymbol)
	assert.True(t, c.Get().TaxRate.Equal(decimal.NewFromInt(17)))

	updated, err := c.Update(ctx, entity.SettingTaxRate, "16")
	require.NoError(t, err)
	assert.True(t, updated.TaxRate.Equal(decimal.NewFromInt(16)))

	_, err = c.Update(ctx, entity.SettingTaxRate, "120")
	assert.ErrorIs(t, err, entity.ErrInvalidTaxRate)

	_, err = c.Update(ctx, "theme", "dark")
	assert.ErrorIs(t, err, entity.ErrUnknownSetting)
}

func TestSettingsCache_KeepsSnapshotOnLoadFailure(t *testing.T) {
	c := NewSettingsCache(failingSettingsRepo{})
	assert.Error(t, c.Load(context.Background()))
	assert.Equal(t, entity.DefaultStoreSettings(), c.Get())
}
