package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreSettingsFromMap(t *testing.T) {
	s := StoreSettingsFromMap(map[string]string{
		SettingCompanyName:    "Mercearia Central",
		SettingCurrencySymbol: "$",
		SettingTaxRate:        "16",
		"unknown":             "ignored",
	})

	assert.Equal(t, "Mercearia Central", s.CompanyName)
	assert.Equal(t, "$", s.CurrencySymbol)
	assert.True(t, s.TaxRate.Equal(d("16")))
	assert.Equal(t, "MZN", s.Currency)
	assert.Equal(t, "Obrigado pela sua preferência!", s.ReceiptFooter)
}

func TestStoreSettingsFromMap_InvalidTaxKeepsDefault(t *testing.T) {
	s := StoreSettingsFromMap(map[string]string{SettingTaxRate: "abc"})
	assert.True(t, s.TaxRate.Equal(d("17")))

	s = StoreSettingsFromMap(map[string]string{SettingTaxRate: "150"})
	assert.True(t, s.TaxRate.Equal(d("17")))
}

func TestValidateSetting(t *testing.T) {
	assert.NoError(t, ValidateSetting(SettingTaxRate, "12.5"))
	assert.ErrorIs(t, ValidateSetting(SettingTaxRate, "-3"), ErrInvalidTaxRate)
	assert.ErrorIs(t, ValidateSetting("theme", "dark"), ErrUnknownSetting)
	assert.ErrorIs(t, ValidateSetting(SettingCompanyName, " "), ErrInvalidSetting)
	assert.NoError(t, ValidateSetting(SettingReceiptFooter, ""))
}

func TestProduct_Matches(t *testing.T) {
	barcode := "7891000100103"
	p := testProduct("Coca-Cola 350ml", "2.50", 50)
	p.Barcode = &barcode

	assert.True(t, p.Matches("coca"))
	assert.True(t, p.Matches("BEBIDAS"))
	assert.True(t, p.Matches("100010"))
	assert.True(t, p.Matches(""))
	assert.False(t, p.Matches("arroz"))
}

func TestProduct_IsLowStock(t *testing.T) {
	p := testProduct("Arroz", "25.90", 5)
	assert.False(t, p.IsLowStock())

	minStock := 5
	p.MinStock = &minStock
	assert.True(t, p.IsLowStock())

	p.Stock = 6
	assert.False(t, p.IsLowStock())
}
