package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/TSaugineta225/vendendo-facil/src/pos/application/request"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/infrastructure/persistence/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seededSale struct {
	at       time.Time
	pm       entity.PaymentMethod
	total    string
	tax      string
	discount string
	items    int
	customer *uuid.UUID
}

func seedSales(t *testing.T, store *memory.Store, rows []seededSale) []*entity.Sale {
	t.Helper()
	var out []*entity.Sale
	for _, r := range rows {
		s := &entity.Sale{
			ID:             uuid.New(),
			CashierID:      uuid.New(),
			CustomerID:     r.customer,
			TotalAmount:    d(r.total),
			TaxAmount:      d(r.tax),
			DiscountAmount: d(r.discount),
			PaymentMethod:  r.pm,
			CreatedAt:      r.at,
		}
		for i := 0; i < r.items; i++ {
			s.Items = append(s.Items, entity.SaleItem{ID: uuid.New(), SaleID: s.ID, ProductID: uuid.New(), ProductName: "X", Quantity: 2})
		}
		require.NoError(t, store.Sales().Create(context.Background(), s))
		out = append(out, s)
	}
	return out
}

func day(h int) time.Time { return time.Date(2026, 3, 1, h, 0, 0, 0, time.UTC) }

func TestDailyReport(t *testing.T) {
	store := memory.NewStore()
	seedSales(t, store, []seededSale{
		{at: day(9), pm: entity.PaymentCash, total: "15.38", tax: "2.38", discount: "1.00", items: 2},
		{at: day(12), pm: entity.PaymentMpesa, total: "11.70", tax: "1.70", discount: "0", items: 1},
		{at: day(18), pm: entity.PaymentCash, total: "3.00", tax: "0", discount: "0", items: 1},
		{at: day(9).AddDate(0, 0, 1), pm: entity.PaymentVisa, total: "100", tax: "0", discount: "0", items: 1},
	})

	uc := NewDailyReportUseCase(store.Sales())
	uc.location = time.UTC

	report, err := uc.Execute(context.Background(), "2026-03-01")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", report.Date)
	assert.Equal(t, 3, report.SalesCount)
	assert.Equal(t, 8, report.ItemsSold)
	assert.Equal(t, "30.08", report.NetTotal.StringFixed(2))
	assert.Equal(t, "27.00", report.GrossTotal.StringFixed(2))
	assert.Equal(t, "4.08", report.Taxes.StringFixed(2))
	assert.Equal(t, "1.00", report.Discounts.StringFixed(2))
	assert.Equal(t, "10.03", report.AverageTicket.StringFixed(2))

	require.Len(t, report.ByPayment, 2)
	assert.Equal(t, "dinheiro", report.ByPayment[0].PaymentMethod)
	assert.Equal(t, 2, report.ByPayment[0].SalesCount)
	assert.Equal(t, "18.38", report.ByPayment[0].Total.StringFixed(2))
	assert.Equal(t, "M-Pesa", report.ByPayment[1].Label)

	require.NotNil(t, report.FirstSaleAt)
	assert.True(t, report.FirstSaleAt.Equal(day(9)))
	assert.True(t, report.LastSaleAt.Equal(day(18)))
}

func TestDailyReport_EmptyDayAndBadDate(t *testing.T) {
	uc := NewDailyReportUseCase(memory.NewStore().Sales())

	report, err := uc.Execute(context.Background(), "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, 0, report.SalesCount)
	assert.True(t, report.AverageTicket.IsZero())
	assert.Nil(t, report.FirstSaleAt)

	_, err = uc.Execute(context.Background(), "01/03/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestSalesHistory_ListFiltersAndLimits(t *testing.T) {
	store := memory.NewStore()
	seedSales(t, store, []seededSale{
		{at: day(9), pm: entity.PaymentCash, total: "1", tax: "0", discount: "0", items: 1},
		{at: day(10), pm: entity.PaymentMpesa, total: "2", tax: "0", discount: "0", items: 1},
		{at: day(9).AddDate(0, 0, 2), pm: entity.PaymentCash, total: "3", tax: "0", discount: "0", items: 1},
	})
	uc := NewSalesHistoryUseCase(store.Sales(), store.Customers())
	uc.location = time.UTC
	ctx := context.Background()

	items, err := uc.List(ctx, request.ListSalesRequest{From: "2026-03-01", To: "2026-03-01"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2", items[0].TotalAmount.String(), "newest first")

	items, err = uc.List(ctx, request.ListSalesRequest{PaymentMethod: "DINHEIRO"})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = uc.List(ctx, request.ListSalesRequest{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, items, 3)

	filter, err := uc.toFilter(request.ListSalesRequest{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, MaxSalesLimit, filter.Limit)

	_, err = uc.List(ctx, request.ListSalesRequest{PaymentMethod: "pix"})
	assert.ErrorIs(t, err, entity.ErrMissingPaymentMethod)

	_, err = uc.List(ctx, request.ListSalesRequest{From: "yesterday"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestSalesHistory_GetResolvesCustomer(t *testing.T) {
	store := memory.NewStore()
	customer := entity.Customer{ID: uuid.New(), Name: "Ana Machava"}
	store.PutCustomer(customer)
	sales := seedSales(t, store, []seededSale{
		{at: day(9), pm: entity.PaymentVisa, total: "15.38", tax: "2.38", discount: "1.00", items: 2, customer: &customer.ID},
	})

	uc := NewSalesHistoryUseCase(store.Sales(), store.Customers())
	resp, err := uc.GetResponse(context.Background(), sales[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Machava", resp.CustomerName)
	assert.Equal(t, "Visa", resp.PaymentMethodName)
	assert.Equal(t, "14.00", resp.Subtotal.StringFixed(2))
	assert.Equal(t, sales[0].ShortID(), resp.SaleNumber)

	_, err = uc.GetResponse(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entity.ErrSaleNotFound)
}

func TestExportSalesCSV(t *testing.T) {
	store := memory.NewStore()
	customer := entity.Customer{ID: uuid.New(), Name: "Ana, Machava"}
	store.PutCustomer(customer)
	missing := uuid.New()
	sales := seedSales(t, store, []seededSale{
		{at: day(9), pm: entity.PaymentCash, total: "15.375", tax: "0", discount: "0", items: 2, customer: &customer.ID},
		{at: day(10), pm: entity.PaymentMmola, total: "3", tax: "0", discount: "0", items: 1, customer: &missing},
		{at: day(11), pm: entity.PaymentVisa, total: "4", tax: "0", discount: "0", items: 3},
	})

	uc := NewExportSalesCSVUseCase(store.Sales(), store.Customers())
	uc.history.location = time.UTC

	var buf bytes.Buffer
	n, err := uc.Execute(context.Background(), &buf, request.ListSalesRequest{From: "2026-03-01", To: "2026-03-01"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"ID", "Data", "Cliente", "Total", "Pagamento", "Itens"}, records[0])
	assert.Equal(t, []string{sales[2].ID.String(), "01/03/2026", "N/A", "4.00", "visa", "3"}, records[1])
	assert.Equal(t, "N/A", records[2][2], "unknown customer falls back to N/A")
	assert.Equal(t, []string{sales[0].ID.String(), "01/03/2026", "Ana, Machava", "15.38", "dinheiro", "2"}, records[3])
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "relatorio_vendas_daily_2026-03-01.csv", ExportFileName("daily", day(9)))
	assert.Equal(t, "relatorio_vendas_custom_2026-03-01.csv", ExportFileName("", day(9)))
}
