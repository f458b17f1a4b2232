package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/TSaugineta225/vendendo-facil/src/pos/application/request"
	"github.com/TSaugineta225/vendendo-facil/src/pos/application/response"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"

	"github.com/google/uuid"
)

const (
	DefaultSalesLimit = 50
	MaxSalesLimit     = 100
	dateLayout        = "2006-01-02"
)

// ErrInvalidDate se retorna cuando una fecha no viene en formato YYYY-MM-DD
var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

// SalesHistoryUseCase consulta ventas ya confirmadas
type SalesHistoryUseCase struct {
	sales     port.SaleRepository
	customers port.CustomerRepository
	location  *time.Location
}

// NewSalesHistoryUseCase crea una nueva instancia. customers puede ser nil.
func NewSalesHistoryUseCase(sales port.SaleRepository, customers port.CustomerRepository) *SalesHistoryUseCase {
	return &SalesHistoryUseCase{sales: sales, customers: customers, location: time.Local}
}

// Get carga una venta con sus items y el nombre del cliente si existe
func (uc *SalesHistoryUseCase) Get(ctx context.Context, id uuid.UUID) (*entity.Sale, string, error) {
	sale, err := uc.sales.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return sale, customerName(ctx, uc.customers, sale.CustomerID), nil
}

// GetResponse es Get mapeado al DTO de venta
func (uc *SalesHistoryUseCase) GetResponse(ctx context.Context, id uuid.UUID) (*response.SaleResponse, error) {
	sale, name, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale, name), nil
}

// List retorna las ventas del rango, más recientes primero, con límite máximo de 100
func (uc *SalesHistoryUseCase) List(ctx context.Context, req request.ListSalesRequest) ([]*response.SaleListItem, error) {
	filter, err := uc.toFilter(req)
	if err != nil {
		return nil, err
	}

	sales, err := uc.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*response.SaleListItem, 0, len(sales))
	for _, s := range sales {
		items = append(items, &response.SaleListItem{
			ID:             s.ID,
			SaleNumber:     s.ShortID(),
			CustomerID:     s.CustomerID,
			PaymentMethod:  string(s.PaymentMethod),
			TotalAmount:    s.TotalAmount,
			DiscountAmount: s.DiscountAmount,
			TaxAmount:      s.TaxAmount,
			TotalItems:     s.TotalItems(),
			CreatedAt:      s.CreatedAt,
		})
	}
	return items, nil
}

func (uc *SalesHistoryUseCase) toFilter(req request.ListSalesRequest) (port.SaleFilter, error) {
	filter := port.SaleFilter{Limit: req.Limit}
	if filter.Limit <= 0 {
		filter.Limit = DefaultSalesLimit
	}
	if filter.Limit > MaxSalesLimit {
		filter.Limit = MaxSalesLimit
	}

	if req.From != "" {
		from, err := parseDay(req.From, uc.location)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := parseDay(req.To, uc.location)
		if err != nil {
			return filter, err
		}
		// Rango inclusivo por día: [from, to+1d)
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}
	if strings.TrimSpace(req.PaymentMethod) != "" {
		pm, err := entity.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			return filter, fmt.Errorf("unknown payment method %q: %w", req.PaymentMethod, err)
		}
		filter.PaymentMethod = &pm
	}
	return filter, nil
}

func parseDay(raw string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return day, nil
}

// customerName resuelve el nombre del cliente; cualquier fallo deja el nombre vacío
func customerName(ctx context.Context, customers port.CustomerRepository, id *uuid.UUID) string {
	if customers == nil || id == nil {
		return ""
	}
	c, err := customers.FindByID(ctx, *id)
	if err != nil {
		if !errors.Is(err, entity.ErrCustomerNotFound) {
			log.Printf("⚠️  Could not load customer %s: %v", *id, err)
		}
		return ""
	}
	return c.Name
}

// ToSaleResponse arma el DTO listo para imprimir
func ToSaleResponse(sale *entity.Sale, customer string) *response.SaleResponse {
	items := make([]response.SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, response.SaleItemResponse{
			ItemID:             item.ID,
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: item.DiscountPercentage,
			TotalPrice:         item.TotalPrice,
		})
	}

	return &response.SaleResponse{
		SaleID:            sale.ID,
		SaleNumber:        sale.ShortID(),
		Items:             items,
		TotalItems:        sale.TotalItems(),
		Subtotal:          sale.Subtotal(),
		DiscountAmount:    sale.DiscountAmount,
		TaxAmount:         sale.TaxAmount,
		TotalAmount:       sale.TotalAmount,
		PaymentMethod:     string(sale.PaymentMethod),
		PaymentMethodName: sale.PaymentMethod.Label(),
		CustomerID:        sale.CustomerID,
		CustomerName:      customer,
		CashierID:         sale.CashierID,
		Notes:             sale.Notes,
		CreatedAt:         sale.CreatedAt,
	}
}
