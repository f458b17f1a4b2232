package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest agrega un producto al carrito. Cantidad omitida = 1.
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// SetQuantityRequest reemplaza la cantidad de una línea (0 = quitar)
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// SetDiscountRequest fija el descuento porcentual de una línea
type SetDiscountRequest struct {
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// CheckoutRequest cierra la venta del carrito
type CheckoutRequest struct {
	PaymentMethod  string          `json:"payment_method"`
	DiscountAmount decimal.Decimal `json:"discount_amount,omitempty"` // Descuento fijo (default: 0)
	CustomerID     *uuid.UUID      `json:"customer_id"`               // NULL = consumidor final
	Notes          string          `json:"notes,omitempty"`
}
