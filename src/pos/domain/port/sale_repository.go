package port

import (
	"context"
	"time"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"

	"github.com/google/uuid"
)

// SaleFilter restringe el listado de ventas. Campos nil no filtran.
type SaleFilter struct {
	From          *time.Time
	To            *time.Time
	PaymentMethod *entity.PaymentMethod
	Limit         int
}

// SaleRepository define el contrato para persistir ventas.
// Sin updates ni deletes: una venta es inmutable.
type SaleRepository interface {
	// Create persiste la venta y sus items como una sola escritura lógica
	Create(ctx context.Context, sale *entity.Sale) error

	// FindByID carga la venta con sus items; entity.ErrSaleNotFound si no existe
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)

	// List retorna ventas con sus items, más recientes primero
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}

// SaleCommitter es implementado por almacenes con transacciones: persiste la venta,
// sus items y los descuentos de stock todo o nada.
type SaleCommitter interface {
	CommitSale(ctx context.Context, sale *entity.Sale) error
}
