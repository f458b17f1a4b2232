package usecase

import (
	"context"
	"log"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"

	"github.com/google/uuid"
)

// InventoryUseCase agrupa la búsqueda de productos y el ajuste de stock
type InventoryUseCase struct {
	products port.ProductRepository
}

func NewInventoryUseCase(products port.ProductRepository) *InventoryUseCase {
	return &InventoryUseCase{products: products}
}

// Search busca por nombre, categoría o código de barras. Vacío = todo el catálogo.
func (uc *InventoryUseCase) Search(ctx context.Context, term string) ([]*entity.Product, error) {
	products, err := uc.products.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*entity.Product{}
	}
	return products, nil
}

// LowStock lista los productos en o por debajo de su stock mínimo
func (uc *InventoryUseCase) LowStock(ctx context.Context) ([]*entity.Product, error) {
	products, err := uc.products.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*entity.Product{}
	}
	return products, nil
}

// AdjustStock reemplaza el stock de un producto y retorna el producto actualizado
func (uc *InventoryUseCase) AdjustStock(ctx context.Context, productID uuid.UUID, stock int) (*entity.Product, error) {
	if stock < 0 {
		return nil, entity.ErrInvalidStockValue
	}
	if err := uc.products.SetStock(ctx, productID, stock); err != nil {
		return nil, err
	}
	log.Printf("📦 Stock adjusted: product=%s, stock=%d", productID, stock)
	return uc.products.FindByID(ctx, productID)
}
