package entity

import (
	"strings"

	"github.com/google/uuid"
)

// Customer es el cliente asociado opcionalmente a una venta
type Customer struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   *string   `json:"email,omitempty"`
	Phone   *string   `json:"phone,omitempty"`
	Address *string   `json:"address,omitempty"`
}

// Validate exige el nombre; los datos de contacto son opcionales
func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCustomerNameRequired
	}
	return nil
}

// Matches compara nombre y email sin distinguir mayúsculas y el teléfono tal cual
func (c Customer) Matches(term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	if strings.Contains(strings.ToLower(c.Name), lower) {
		return true
	}
	if c.Email != nil && strings.Contains(strings.ToLower(*c.Email), lower) {
		return true
	}
	return c.Phone != nil && strings.Contains(*c.Phone, term)
}
