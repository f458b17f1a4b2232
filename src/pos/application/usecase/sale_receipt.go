package usecase

import (
	"context"

	"github.com/TSaugineta225/vendendo-facil/src/pos/application/receipt"

	"github.com/google/uuid"
)

// SaleReceiptUseCase genera el recibo de texto de una venta persistida
type SaleReceiptUseCase struct {
	history  *SalesHistoryUseCase
	settings SettingsProvider
}

func NewSaleReceiptUseCase(history *SalesHistoryUseCase, settings SettingsProvider) *SaleReceiptUseCase {
	return &SaleReceiptUseCase{history: history, settings: settings}
}

// Execute retorna el texto del recibo y el nombre de archivo sugerido
func (uc *SaleReceiptUseCase) Execute(ctx context.Context, saleID uuid.UUID) (string, string, error) {
	sale, customer, err := uc.history.Get(ctx, saleID)
	if err != nil {
		return "", "", err
	}
	r := receipt.NewRenderer(uc.settings.Get())
	r.Location = uc.history.location
	return r.Render(sale, customer), receipt.FileName(sale), nil
}
