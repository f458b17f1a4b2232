package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale representa una venta finalizada (Aggregate Root). Inmutable una vez creada.
type Sale struct {
	ID             uuid.UUID       `json:"id"`
	CustomerID     *uuid.UUID      `json:"customer_id"` // NULL = consumidor final
	CashierID      uuid.UUID       `json:"cashier_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`    // Subtotal + impuesto - descuento
	DiscountAmount decimal.Decimal `json:"discount_amount"` // Descuento fijo
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	Notes          *string         `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	Items          []SaleItem      `json:"items"`
}

// NewSale arma el aggregate a partir de las líneas ya validadas y sus totales
func NewSale(
	cashierID uuid.UUID,
	customerID *uuid.UUID,
	paymentMethod PaymentMethod,
	lines []CartLine,
	totals OrderTotals,
	notes string,
) (*Sale, error) {
	if cashierID == uuid.Nil {
		return nil, ErrCashierRequired
	}
	if !paymentMethod.IsValid() {
		return nil, ErrMissingPaymentMethod
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	saleID := uuid.New()
	items := make([]SaleItem, 0, len(lines))
	for _, line := range lines {
		item, err := NewSaleItemFromLine(saleID, line)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	var notesPtr *string
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		notesPtr = &trimmed
	}

	return &Sale{
		ID:             saleID,
		CustomerID:     customerID,
		CashierID:      cashierID,
		TotalAmount:    totals.GrandTotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		PaymentMethod:  paymentMethod,
		Notes:          notesPtr,
		CreatedAt:      time.Now(),
		Items:          items,
	}, nil
}

// TotalItems retorna el número de items de la venta
func (s *Sale) TotalItems() int {
	return len(s.Items)
}

// Subtotal recupera el subtotal a partir de los campos netos persistidos
func (s *Sale) Subtotal() decimal.Decimal {
	return s.TotalAmount.Sub(s.TaxAmount).Add(s.DiscountAmount)
}

// ShortID son los últimos 8 caracteres del identificador, usados en recibos
func (s *Sale) ShortID() string {
	id := s.ID.String()
	return id[len(id)-8:]
}
