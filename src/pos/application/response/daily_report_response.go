package response

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentBreakdown resume las ventas de un medio de pago
type PaymentBreakdown struct {
	PaymentMethod string          `json:"payment_method"`
	Label         string          `json:"label"`
	SalesCount    int             `json:"sales_count"`
	Total         decimal.Decimal `json:"total"`
}

// DailyReportResponse representa el reporte diario de ventas
type DailyReportResponse struct {
	Date          string             `json:"date"` // YYYY-MM-DD
	SalesCount    int                `json:"sales_count"`
	ItemsSold     int                `json:"items_sold"`
	GrossTotal    decimal.Decimal    `json:"gross_total"` // Suma de subtotales
	Discounts     decimal.Decimal    `json:"discounts"`
	Taxes         decimal.Decimal    `json:"taxes"`
	NetTotal      decimal.Decimal    `json:"net_total"` // Suma total_amount
	AverageTicket decimal.Decimal    `json:"average_ticket"`
	ByPayment     []PaymentBreakdown `json:"by_payment_method"`
	FirstSaleAt   *time.Time         `json:"first_sale_at,omitempty"`
	LastSaleAt    *time.Time         `json:"last_sale_at,omitempty"`
}
