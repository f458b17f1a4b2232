package port

import (
	"context"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"

	"github.com/google/uuid"
)

// CustomerRepository define el acceso a los clientes de la tienda
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// Search busca por nombre, email o teléfono; término vacío lista todos por nombre
	Search(ctx context.Context, term string) ([]*entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) error
	// Update reemplaza los datos del cliente; ErrCustomerNotFound si no existe
	Update(ctx context.Context, customer *entity.Customer) error
}
