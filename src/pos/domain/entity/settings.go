package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Claves de la tabla settings
const (
	SettingCurrency       = "currency"
	SettingCurrencySymbol = "currency_symbol"
	SettingLanguage       = "language"
	SettingTaxRate        = "tax_rate"
	SettingCompanyName    = "company_name"
	SettingReceiptFooter  = "receipt_footer"
)

// StoreSettings es la configuración de la tienda que se inyecta en el cálculo de
// totales y en el recibo
type StoreSettings struct {
	Currency       string          `json:"currency"`
	CurrencySymbol string          `json:"currency_symbol"`
	Language       string          `json:"language"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	CompanyName    string          `json:"company_name"`
	ReceiptFooter  string          `json:"receipt_footer"`
}

func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		Currency:       "MZN",
		CurrencySymbol: "MT",
		Language:       "pt",
		TaxRate:        decimal.NewFromInt(17),
		CompanyName:    "Minha Empresa",
		ReceiptFooter:  "Obrigado pela sua preferência!",
	}
}

// IsSettingKey indica si la clave es una configuración conocida
func IsSettingKey(key string) bool {
	switch key {
	case SettingCurrency, SettingCurrencySymbol, SettingLanguage,
		SettingTaxRate, SettingCompanyName, SettingReceiptFooter:
		return true
	}
	return false
}

// ParseTaxRate valida una tasa de impuesto en [0,100]
func ParseTaxRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, ErrInvalidTaxRate
	}
	if !validTaxRate(rate) {
		return decimal.Zero, ErrInvalidTaxRate
	}
	return rate, nil
}

// ValidateSetting verifica un par clave/valor antes de guardarlo
func ValidateSetting(key, value string) error {
	if !IsSettingKey(key) {
		return ErrUnknownSetting
	}
	if key == SettingTaxRate {
		if _, err := ParseTaxRate(value); err != nil {
			return err
		}
		return nil
	}
	if strings.TrimSpace(value) == "" && key != SettingReceiptFooter {
		return ErrInvalidSetting
	}
	return nil
}

// StoreSettingsFromMap aplica los valores guardados sobre los valores por defecto.
// Claves desconocidas o tasas inválidas se ignoran.
func StoreSettingsFromMap(values map[string]string) StoreSettings {
	s := DefaultStoreSettings()
	for key, value := range values {
		switch key {
		case SettingCurrency:
			s.Currency = value
		case SettingCurrencySymbol:
			s.CurrencySymbol = value
		case SettingLanguage:
			s.Language = value
		case SettingTaxRate:
			if rate, err := ParseTaxRate(value); err == nil {
				s.TaxRate = rate
			}
		case SettingCompanyName:
			s.CompanyName = value
		case SettingReceiptFooter:
			s.ReceiptFooter = value
		}
	}
	return s
}

// FormatMoney formatea con el símbolo de la tienda y dos decimales,
// redondeando la mitad lejos de cero
func (s StoreSettings) FormatMoney(amount decimal.Decimal) string {
	return s.CurrencySymbol + " " + amount.StringFixed(2)
}
