package entity

import "github.com/shopspring/decimal"

// OrderTotals son los totales derivados del carrito. Se recalculan en cada consulta.
type OrderTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"` // Descuento fijo efectivamente aplicado
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// LineTotal = precio * cantidad
func LineTotal(line CartLine) decimal.Decimal {
	return line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// LineDiscountAmount = LineTotal * descuento% / 100
func LineDiscountAmount(line CartLine) decimal.Decimal {
	return LineTotal(line).Mul(line.DiscountPercent).Div(hundred)
}

// LineNet = LineTotal - LineDiscountAmount
func LineNet(line CartLine) decimal.Decimal {
	return LineTotal(line).Sub(LineDiscountAmount(line))
}

// Subtotal suma el neto de todas las líneas. Carrito vacío = 0.
func Subtotal(lines []CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(LineNet(line))
	}
	return sum
}

func validTaxRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && !rate.GreaterThan(hundred)
}

// TaxAmount = Subtotal * tasa / 100, con tasa en [0,100]
func TaxAmount(lines []CartLine, taxRatePercent decimal.Decimal) (decimal.Decimal, error) {
	if !validTaxRate(taxRatePercent) {
		return decimal.Zero, ErrInvalidTaxRate
	}
	return Subtotal(lines).Mul(taxRatePercent).Div(hundred), nil
}

// GrandTotal = Subtotal + impuesto - descuento fijo, nunca negativo
func GrandTotal(lines []CartLine, taxRatePercent, aggregateDiscount decimal.Decimal) (decimal.Decimal, error) {
	totals, err := CalculateTotals(lines, taxRatePercent, aggregateDiscount)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.GrandTotal, nil
}

// CalculateTotals calcula todos los totales sin redondear resultados intermedios.
// Si el descuento fijo supera subtotal+impuesto, el total queda en cero y el descuento
// registrado se limita a subtotal+impuesto.
func CalculateTotals(lines []CartLine, taxRatePercent, aggregateDiscount decimal.Decimal) (OrderTotals, error) {
	if aggregateDiscount.IsNegative() {
		return OrderTotals{}, ErrInvalidDiscount
	}
	tax, err := TaxAmount(lines, taxRatePercent)
	if err != nil {
		return OrderTotals{}, err
	}

	subtotal := Subtotal(lines)
	gross := subtotal.Add(tax)
	discount := aggregateDiscount
	if discount.GreaterThan(gross) {
		discount = gross
	}

	return OrderTotals{
		Subtotal:       subtotal,
		TaxAmount:      tax,
		DiscountAmount: discount,
		GrandTotal:     gross.Sub(discount),
	}, nil
}
