package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/TSaugineta225/vendendo-facil/src/pos/application/request"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"

	"github.com/google/uuid"
)

// CustomersUseCase alimenta el selector de clientes de la caja y el alta/edición del CRM
type CustomersUseCase struct {
	customers port.CustomerRepository
}

func NewCustomersUseCase(customers port.CustomerRepository) *CustomersUseCase {
	return &CustomersUseCase{customers: customers}
}

// Search retorna los clientes que coinciden con el término (todos si es vacío)
func (uc *CustomersUseCase) Search(ctx context.Context, term string) ([]*entity.Customer, error) {
	customers, err := uc.customers.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []*entity.Customer{}
	}
	return customers, nil
}

func (uc *CustomersUseCase) Create(ctx context.Context, req request.CustomerRequest) (*entity.Customer, error) {
	customer := customerFromRequest(uuid.New(), req)
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if err := uc.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	log.Printf("✅ Cliente %s registrado (%s)", customer.Name, customer.ID)
	return customer, nil
}

// Update reemplaza todos los datos del cliente
func (uc *CustomersUseCase) Update(ctx context.Context, id uuid.UUID, req request.CustomerRequest) (*entity.Customer, error) {
	customer := customerFromRequest(id, req)
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if err := uc.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func customerFromRequest(id uuid.UUID, req request.CustomerRequest) *entity.Customer {
	return &entity.Customer{
		ID:      id,
		Name:    strings.TrimSpace(req.Name),
		Email:   optionalString(req.Email),
		Phone:   optionalString(req.Phone),
		Address: optionalString(req.Address),
	}
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
