package usecase

import (
	"context"
	"time"

	"github.com/TSaugineta225/vendendo-facil/src/pos/application/response"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"

	"github.com/shopspring/decimal"
)

// DailyReportUseCase caso de uso para reporte diario de ventas
type DailyReportUseCase struct {
	sales    port.SaleRepository
	location *time.Location
}

// NewDailyReportUseCase crea una nueva instancia del caso de uso
func NewDailyReportUseCase(sales port.SaleRepository) *DailyReportUseCase {
	return &DailyReportUseCase{sales: sales, location: time.Local}
}

// Execute genera el reporte para una fecha YYYY-MM-DD.
// Usa el rango [from, to) y agrega en memoria.
func (uc *DailyReportUseCase) Execute(ctx context.Context, date string) (*response.DailyReportResponse, error) {
	from, err := parseDay(date, uc.location)
	if err != nil {
		return nil, err
	}
	to := from.AddDate(0, 0, 1)

	sales, err := uc.sales.List(ctx, port.SaleFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	resp := &response.DailyReportResponse{
		Date:          from.Format(dateLayout),
		SalesCount:    len(sales),
		GrossTotal:    decimal.Zero,
		Discounts:     decimal.Zero,
		Taxes:         decimal.Zero,
		NetTotal:      decimal.Zero,
		AverageTicket: decimal.Zero,
	}

	byMethod := make(map[entity.PaymentMethod]*response.PaymentBreakdown)
	for _, s := range sales {
		resp.GrossTotal = resp.GrossTotal.Add(s.Subtotal())
		resp.Discounts = resp.Discounts.Add(s.DiscountAmount)
		resp.Taxes = resp.Taxes.Add(s.TaxAmount)
		resp.NetTotal = resp.NetTotal.Add(s.TotalAmount)
		for _, item := range s.Items {
			resp.ItemsSold += item.Quantity
		}

		b, ok := byMethod[s.PaymentMethod]
		if !ok {
			b = &response.PaymentBreakdown{
				PaymentMethod: string(s.PaymentMethod),
				Label:         s.PaymentMethod.Label(),
				Total:         decimal.Zero,
			}
			byMethod[s.PaymentMethod] = b
		}
		b.SalesCount++
		b.Total = b.Total.Add(s.TotalAmount)

		createdAt := s.CreatedAt
		if resp.FirstSaleAt == nil || createdAt.Before(*resp.FirstSaleAt) {
			resp.FirstSaleAt = &createdAt
		}
		if resp.LastSaleAt == nil || createdAt.After(*resp.LastSaleAt) {
			resp.LastSaleAt = &createdAt
		}
	}

	if resp.SalesCount > 0 {
		resp.AverageTicket = resp.NetTotal.Div(decimal.NewFromInt(int64(resp.SalesCount)))
	}

	// Orden de presentación fijo, solo medios con ventas
	for _, pm := range entity.PaymentMethods() {
		if b, ok := byMethod[pm]; ok {
			resp.ByPayment = append(resp.ByPayment, *b)
		}
	}

	return resp, nil
}
