package entity

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(name, price string, stock int) Product {
	return Product{
		ID:       uuid.New(),
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		Category: "Bebidas",
	}
}

func TestCart_AddItem_NewLine(t *testing.T) {
	cart := NewCart()
	p := testProduct("Coca-Cola 350ml", "2.50", 10)

	require.NoError(t, cart.AddItem(p, 2))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, p.ID, lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].DiscountPercent.IsZero())
}

func TestCart_AddItem_IncrementsExistingLine(t *testing.T) {
	cart := NewCart()
	p := testProduct("Pão Francês", "0.50", 5)

	require.NoError(t, cart.AddItem(p, 1))
	require.NoError(t, cart.AddItem(p, 3))

	lines := cart.Lines()
	require.Len(t, lines, 1, "re-adding must not duplicate the line")
	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, 4, cart.ItemCount())
}

func TestCart_AddItem_StockExceededLeavesCartUnchanged(t *testing.T) {
	cart := NewCart()
	p := testProduct("Arroz 5kg", "25.90", 3)
	require.NoError(t, cart.AddItem(p, 2))

	err := cart.AddItem(p, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStockExceeded))

	var lineErr *LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, p.ID, lineErr.ProductID)
	assert.Equal(t, 2, cart.Lines()[0].Quantity)
}

func TestCart_AddItem_HugeQuantityOnExistingLine(t *testing.T) {
	cart := NewCart()
	p := testProduct("Água Mineral 1.5L", "1.20", 10)
	require.NoError(t, cart.AddItem(p, 1))

	err := cart.AddItem(p, math.MaxInt)
	assert.ErrorIs(t, err, ErrStockExceeded)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 1, cart.ItemCount())
}

func TestCart_AddItem_NewLineOverStock(t *testing.T) {
	cart := NewCart()
	p := testProduct("Feijão Preto 1kg", "8.50", 1)

	err := cart.AddItem(p, 2)
	assert.ErrorIs(t, err, ErrStockExceeded)
	assert.True(t, cart.IsEmpty())
}

func TestCart_AddItem_InvalidQuantity(t *testing.T) {
	cart := NewCart()
	err := cart.AddItem(testProduct("Leite", "4.20", 10), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.True(t, cart.IsEmpty())
}

func TestCart_SetQuantity(t *testing.T) {
	cart := NewCart()
	p := testProduct("Leite Integral 1L", "4.20", 5)
	require.NoError(t, cart.AddItem(p, 1))

	require.NoError(t, cart.SetQuantity(p.ID, 5))
	assert.Equal(t, 5, cart.Lines()[0].Quantity)

	assert.ErrorIs(t, cart.SetQuantity(p.ID, 6), ErrStockExceeded)
	assert.Equal(t, 5, cart.Lines()[0].Quantity)

	assert.ErrorIs(t, cart.SetQuantity(p.ID, -1), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.SetQuantity(uuid.New(), 1), ErrItemNotInCart)

	require.NoError(t, cart.SetQuantity(p.ID, 0))
	assert.True(t, cart.IsEmpty())
}

func TestCart_RemoveItem(t *testing.T) {
	cart := NewCart()
	a := testProduct("A", "1.00", 5)
	b := testProduct("B", "2.00", 5)
	c := testProduct("C", "3.00", 5)
	require.NoError(t, cart.AddItem(a, 1))
	require.NoError(t, cart.AddItem(b, 1))
	require.NoError(t, cart.AddItem(c, 1))

	cart.RemoveItem(b.ID)
	cart.RemoveItem(uuid.New())

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, a.ID, lines[0].Product.ID)
	assert.Equal(t, c.ID, lines[1].Product.ID)
}

func TestCart_SetDiscount(t *testing.T) {
	cart := NewCart()
	p := testProduct("B", "10.00", 5)
	require.NoError(t, cart.AddItem(p, 1))

	require.NoError(t, cart.SetDiscount(p.ID, decimal.NewFromInt(10)))
	assert.True(t, cart.Lines()[0].DiscountPercent.Equal(decimal.NewFromInt(10)))

	err := cart.SetDiscount(p.ID, decimal.NewFromInt(150))
	assert.ErrorIs(t, err, ErrInvalidDiscount)
	assert.True(t, cart.Lines()[0].DiscountPercent.Equal(decimal.NewFromInt(10)))

	assert.ErrorIs(t, cart.SetDiscount(p.ID, decimal.NewFromInt(-1)), ErrInvalidDiscount)
	assert.ErrorIs(t, cart.SetDiscount(uuid.New(), decimal.NewFromInt(5)), ErrItemNotInCart)
}

func TestCart_LinesIsACopy(t *testing.T) {
	cart := NewCart()
	p := testProduct("A", "1.00", 5)
	require.NoError(t, cart.AddItem(p, 1))

	lines := cart.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, cart.Lines()[0].Quantity)
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem(testProduct("A", "1.00", 5), 1))
	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.ItemCount())
}
