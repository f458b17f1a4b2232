package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Solo lectura para el núcleo de ventas,
// salvo el descuento de stock al confirmar una venta.
type Product struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Category  string          `json:"category"`
	Barcode   *string         `json:"barcode,omitempty"`
	MinStock  *int            `json:"min_stock,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsLowStock indica si el stock está en o por debajo del mínimo configurado
func (p Product) IsLowStock() bool {
	if p.MinStock == nil {
		return false
	}
	return p.Stock <= *p.MinStock
}

// Matches aplica la búsqueda del PDV: nombre o categoría sin distinguir mayúsculas,
// código de barras por substring exacto
func (p Product) Matches(term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Name), lower) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Category), lower) {
		return true
	}
	return p.Barcode != nil && strings.Contains(*p.Barcode, term)
}
