package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/TSaugineta225/vendendo-facil/src/pos/application/request"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"

	"github.com/google/uuid"
)

var csvHeader = []string{"ID", "Data", "Cliente", "Total", "Pagamento", "Itens"}

// ExportSalesCSVUseCase exporta el historial de ventas en CSV
type ExportSalesCSVUseCase struct {
	history   *SalesHistoryUseCase
	sales     port.SaleRepository
	customers port.CustomerRepository
}

func NewExportSalesCSVUseCase(sales port.SaleRepository, customers port.CustomerRepository) *ExportSalesCSVUseCase {
	return &ExportSalesCSVUseCase{
		history:   NewSalesHistoryUseCase(sales, customers),
		sales:     sales,
		customers: customers,
	}
}

// Execute escribe una fila por venta del rango. Cliente sin nombre = N/A.
// Retorna la cantidad de filas escritas, sin contar el encabezado.
func (uc *ExportSalesCSVUseCase) Execute(ctx context.Context, w io.Writer, req request.ListSalesRequest) (int, error) {
	if req.Limit <= 0 {
		req.Limit = MaxSalesLimit
	}
	filter, err := uc.history.toFilter(req)
	if err != nil {
		return 0, err
	}
	// El export no se limita al máximo del listado
	filter.Limit = req.Limit

	sales, err := uc.sales.List(ctx, filter)
	if err != nil {
		return 0, err
	}

	names := make(map[uuid.UUID]string)
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}
	for _, s := range sales {
		client := "N/A"
		if s.CustomerID != nil {
			name, ok := names[*s.CustomerID]
			if !ok {
				name = customerName(ctx, uc.customers, s.CustomerID)
				names[*s.CustomerID] = name
			}
			if name != "" {
				client = name
			}
		}

		row := []string{
			s.ID.String(),
			s.CreatedAt.In(uc.history.location).Format("02/01/2006"),
			client,
			s.TotalAmount.StringFixed(2),
			string(s.PaymentMethod),
			strconv.Itoa(s.TotalItems()),
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("error writing csv: %w", err)
	}
	return len(sales), nil
}

// ExportFileName es el nombre sugerido del archivo, con la fecha de generación
func ExportFileName(period string, now time.Time) string {
	if period == "" {
		period = "custom"
	}
	return fmt.Sprintf("relatorio_vendas_%s_%s.csv", period, now.Format(dateLayout))
}
