package port

import (
	"context"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"

	"github.com/google/uuid"
)

// ProductRepository define el acceso al catálogo y al stock de productos
type ProductRepository interface {
	// FindByID retorna entity.ErrProductNotFound si no existe
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Search busca por nombre, categoría o código de barras. Término vacío = todos, ordenados por nombre.
	Search(ctx context.Context, term string) ([]*entity.Product, error)

	// ListLowStock retorna los productos con stock <= min_stock
	ListLowStock(ctx context.Context) ([]*entity.Product, error)

	// DecrementStock descuenta solo si el stock actual cubre la cantidad.
	// Si no alcanza retorna entity.ErrInsufficientStock y no modifica nada.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error

	// SetStock reemplaza el stock (ajuste de inventario)
	SetStock(ctx context.Context, id uuid.UUID, stock int) error
}

// ProductInvalidator lo implementan las capas de cache de productos. Se invoca tras
// descuentos de stock hechos fuera del repositorio (p. ej. en una transacción de venta).
type ProductInvalidator interface {
	Invalidate(ctx context.Context, ids ...uuid.UUID)
}
