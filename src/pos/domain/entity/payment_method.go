package entity

import "strings"

// PaymentMethod es el conjunto cerrado de medios de pago aceptados en caja
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "dinheiro"
	PaymentVisa  PaymentMethod = "visa"
	PaymentMpesa PaymentMethod = "mpesa"
	PaymentMmola PaymentMethod = "mmola"
)

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentCash:  "Dinheiro",
	PaymentVisa:  "Visa",
	PaymentMpesa: "M-Pesa",
	PaymentMmola: "e-Mola",
}

// PaymentMethods retorna los medios de pago en orden de presentación
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCash, PaymentVisa, PaymentMpesa, PaymentMmola}
}

// ParsePaymentMethod normaliza el código recibido. Vacío o desconocido es ErrMissingPaymentMethod.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	pm := PaymentMethod(strings.ToLower(strings.TrimSpace(raw)))
	if !pm.IsValid() {
		return "", ErrMissingPaymentMethod
	}
	return pm, nil
}

func (pm PaymentMethod) IsValid() bool {
	_, ok := paymentMethodLabels[pm]
	return ok
}

// Label retorna el nombre legible del medio de pago
func (pm PaymentMethod) Label() string {
	if label, ok := paymentMethodLabels[pm]; ok {
		return label
	}
	return "Unknown"
}

func (pm PaymentMethod) String() string { return string(pm) }
