package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItemResponse representa un item en la respuesta de venta
type SaleItemResponse struct {
	ItemID             uuid.UUID       `json:"item_id"`
	ProductID          uuid.UUID       `json:"product_id"`
	ProductName        string          `json:"product_name"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	TotalPrice         decimal.Decimal `json:"total_price"`
}

// SaleResponse es la venta confirmada, lista para imprimir
type SaleResponse struct {
	SaleID            uuid.UUID          `json:"sale_id"`
	SaleNumber        string             `json:"sale_number"` // Últimos 8 caracteres del id
	Items             []SaleItemResponse `json:"items"`
	TotalItems        int                `json:"total_items"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	DiscountAmount    decimal.Decimal    `json:"discount_amount"`
	TaxAmount         decimal.Decimal    `json:"tax_amount"`
	TotalAmount       decimal.Decimal    `json:"total_amount"`
	PaymentMethod     string             `json:"payment_method"`
	PaymentMethodName string             `json:"payment_method_name"`
	CustomerID        *uuid.UUID         `json:"customer_id,omitempty"`
	CustomerName      string             `json:"customer_name,omitempty"`
	CashierID         uuid.UUID          `json:"cashier_id"`
	Notes             *string            `json:"notes,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
}

// SaleListItem es una fila del historial de ventas
type SaleListItem struct {
	ID             uuid.UUID       `json:"id"`
	SaleNumber     string          `json:"sale_number"`
	CustomerID     *uuid.UUID      `json:"customer_id,omitempty"`
	PaymentMethod  string          `json:"payment_method"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TotalItems     int             `json:"total_items"`
	CreatedAt      time.Time       `json:"created_at"`
}
