package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItem representa un item dentro de una venta (Entity dentro del Aggregate).
// Precio y descuento son snapshots del momento de la venta.
type SaleItem struct {
	ID                 uuid.UUID       `json:"id"`
	SaleID             uuid.UUID       `json:"sale_id"`
	ProductID          uuid.UUID       `json:"product_id"`
	ProductName        string          `json:"product_name"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	TotalPrice         decimal.Decimal `json:"total_price"`
}

// NewSaleItemFromLine congela precio, descuento y total de una línea del carrito
func NewSaleItemFromLine(saleID uuid.UUID, line CartLine) (*SaleItem, error) {
	if line.Quantity <= 0 {
		return nil, NewLineError(line.Product.ID, line.Product.Name, ErrInvalidQuantity)
	}
	if line.Product.Price.IsNegative() {
		return nil, NewLineError(line.Product.ID, line.Product.Name, ErrInvalidPrice)
	}

	return &SaleItem{
		ID:                 uuid.New(),
		SaleID:             saleID,
		ProductID:          line.Product.ID,
		ProductName:        line.Product.Name,
		Quantity:           line.Quantity,
		UnitPrice:          line.Product.Price,
		DiscountPercentage: line.DiscountPercent,
		TotalPrice:         LineNet(line),
	}, nil
}
