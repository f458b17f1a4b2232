package entity

import "github.com/shopspring/decimal"

// ValidateSale verifica una venta antes de persistirla. Devuelve solo la primera
// violación, en el orden: carrito, medio de pago, descuento, impuesto, líneas.
func ValidateSale(lines []CartLine, paymentMethod string, aggregateDiscount, taxRatePercent decimal.Decimal) error {
	errs := validateSale(lines, paymentMethod, aggregateDiscount, taxRatePercent, true)
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// ValidateSaleAll acumula todas las violaciones para mostrarlas juntas en la caja
func ValidateSaleAll(lines []CartLine, paymentMethod string, aggregateDiscount, taxRatePercent decimal.Decimal) error {
	errs := validateSale(lines, paymentMethod, aggregateDiscount, taxRatePercent, false)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateSale(lines []CartLine, paymentMethod string, aggregateDiscount, taxRatePercent decimal.Decimal, firstOnly bool) ValidationErrors {
	var errs ValidationErrors
	fail := func(err error) bool {
		errs = append(errs, err)
		return firstOnly
	}

	if len(lines) == 0 {
		if fail(ErrEmptyCart) {
			return errs
		}
	}
	if _, err := ParsePaymentMethod(paymentMethod); err != nil {
		if fail(err) {
			return errs
		}
	}
	if aggregateDiscount.IsNegative() {
		if fail(ErrNegativeDiscount) {
			return errs
		}
	}
	if !validTaxRate(taxRatePercent) {
		if fail(ErrInvalidTaxRate) {
			return errs
		}
	}

	for _, line := range lines {
		p := line.Product
		if line.Quantity <= 0 {
			if fail(NewLineError(p.ID, p.Name, ErrInvalidQuantity)) {
				return errs
			}
		}
		if p.Price.IsNegative() {
			if fail(NewLineError(p.ID, p.Name, ErrInvalidPrice)) {
				return errs
			}
		}
		if line.Quantity > p.Stock {
			if fail(NewLineError(p.ID, p.Name, ErrInsufficientStock)) {
				return errs
			}
		}
	}

	return errs
}
