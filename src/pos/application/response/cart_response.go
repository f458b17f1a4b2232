package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLineResponse es una línea del carrito con sus importes calculados
type CartLineResponse struct {
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int             `json:"quantity"`
	AvailableStock  int             `json:"available_stock"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	LineTotal       decimal.Decimal `json:"line_total"`
	LineNet         decimal.Decimal `json:"line_net"`
}

// CartResponse es el estado del carrito listo para mostrar en caja
type CartResponse struct {
	CartID         uuid.UUID          `json:"cart_id"`
	Lines          []CartLineResponse `json:"lines"`
	ItemCount      int                `json:"item_count"`
	TaxRate        decimal.Decimal    `json:"tax_rate"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	GrandTotal     decimal.Decimal    `json:"grand_total"`
	Display        CartDisplay        `json:"display"`
}

// CartDisplay son los importes ya formateados con el símbolo de la tienda
type CartDisplay struct {
	Subtotal       string `json:"subtotal"`
	TaxAmount      string `json:"tax_amount"`
	DiscountAmount string `json:"discount_amount"`
	GrandTotal     string `json:"grand_total"`
}

// CartViolation es un problema que impediría cerrar la venta
type CartViolation struct {
	Error       string     `json:"error"`
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
	ProductName string     `json:"product_name,omitempty"`
}

// CartValidationResponse lista todas las violaciones del carrito, en orden de detección
type CartValidationResponse struct {
	CartID     uuid.UUID       `json:"cart_id"`
	Valid      bool            `json:"valid"`
	Violations []CartViolation `json:"violations"`
}
