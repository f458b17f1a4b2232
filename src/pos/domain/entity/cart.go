package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CartLine es un producto dentro del carrito con su cantidad y descuento opcional
type CartLine struct {
	Product         Product         `json:"product"`
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// Cart es el carrito de una sesión de caja. Una línea por producto, en orden de inserción.
// No es seguro para uso concurrente: lo muta un único operador.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddItem agrega un producto o incrementa la línea existente.
// Si el resultado supera el stock el carrito no cambia.
func (c *Cart) AddItem(product Product, quantity int) error {
	if quantity < 1 {
		return NewLineError(product.ID, product.Name, ErrInvalidQuantity)
	}

	if i := c.indexOf(product.ID); i >= 0 {
		// la suma puede desbordar int: se compara contra el remanente
		if quantity > product.Stock-c.lines[i].Quantity {
			return NewLineError(product.ID, product.Name, ErrStockExceeded)
		}
		c.lines[i].Quantity += quantity
		c.lines[i].Product = product
		return nil
	}

	if quantity > product.Stock {
		return NewLineError(product.ID, product.Name, ErrStockExceeded)
	}
	c.lines = append(c.lines, CartLine{
		Product:         product,
		Quantity:        quantity,
		DiscountPercent: decimal.Zero,
	})
	return nil
}

// SetQuantity reemplaza la cantidad de una línea; cero equivale a RemoveItem
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) error {
	if quantity == 0 {
		c.RemoveItem(productID)
		return nil
	}

	i := c.indexOf(productID)
	if i < 0 {
		return NewLineError(productID, "", ErrItemNotInCart)
	}
	line := c.lines[i]
	if quantity < 0 {
		return NewLineError(productID, line.Product.Name, ErrInvalidQuantity)
	}
	if quantity > line.Product.Stock {
		return NewLineError(productID, line.Product.Name, ErrStockExceeded)
	}
	c.lines[i].Quantity = quantity
	return nil
}

// RemoveItem elimina la línea si existe
func (c *Cart) RemoveItem(productID uuid.UUID) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// SetDiscount fija el descuento porcentual de una línea en [0,100]
func (c *Cart) SetDiscount(productID uuid.UUID, percent decimal.Decimal) error {
	i := c.indexOf(productID)
	if i < 0 {
		return NewLineError(productID, "", ErrItemNotInCart)
	}
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return NewLineError(productID, c.lines[i].Product.Name, ErrInvalidDiscount)
	}
	c.lines[i].DiscountPercent = percent
	return nil
}

// Lines retorna una copia de las líneas actuales
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// ItemCount suma las cantidades de todas las líneas
func (c *Cart) ItemCount() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

func (c *Cart) Clear() { c.lines = nil }
