package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"
	domainCriteria "github.com/TSaugineta225/vendendo-facil/src/shared/domain/criteria"
	"github.com/TSaugineta225/vendendo-facil/src/shared/infrastructure/criteria"

	"github.com/google/uuid"
)

const selectProductColumns = `
	SELECT id, name, price, stock, category, barcode, min_stock, updated_at
	FROM products`

// ProductPostgresRepository implementa ProductRepository usando PostgreSQL
type ProductPostgresRepository struct {
	db        *sql.DB
	converter *criteria.SQLCriteriaConverter
}

// NewProductPostgresRepository crea una nueva instancia del repositorio
func NewProductPostgresRepository(db *sql.DB) *ProductPostgresRepository {
	return &ProductPostgresRepository{
		db:        db,
		converter: criteria.NewSQLCriteriaConverter(),
	}
}

var _ port.ProductRepository = (*ProductPostgresRepository)(nil)

// FindByID busca un producto por su ID
func (r *ProductPostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := scanProduct(r.db.QueryRowContext(ctx, selectProductColumns+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding product: %w", err)
	}
	return product, nil
}

// Search busca por nombre o categoría (sin distinguir mayúsculas) y código de barras.
// El término se toma literal: % y _ no actúan como comodines.
func (r *ProductPostgresRepository) Search(ctx context.Context, term string) ([]*entity.Product, error) {
	filters := domainCriteria.NewFilters()
	if term = strings.TrimSpace(term); term != "" {
		filters.Add(domainCriteria.AnyOf(
			domainCriteria.Filter{Field: "name", Operator: domainCriteria.OpILike, Value: term},
			domainCriteria.Filter{Field: "category", Operator: domainCriteria.OpILike, Value: term},
			domainCriteria.Filter{Field: "barcode", Operator: domainCriteria.OpLike, Value: term},
		))
	}

	query, params := r.converter.ToSelectSQL(selectProductColumns,
		domainCriteria.NewCriteria(filters, domainCriteria.NewOrder("name", domainCriteria.ASC), nil, nil))
	return r.queryProducts(ctx, query, params...)
}

// ListLowStock retorna productos con stock en o por debajo del mínimo
func (r *ProductPostgresRepository) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	query := selectProductColumns + `
		WHERE min_stock IS NOT NULL AND stock <= min_stock
		ORDER BY stock, name`
	return r.queryProducts(ctx, query)
}

// DecrementStock descuenta stock solo si alcanza (update condicional)
func (r *ProductPostgresRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	query := `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`

	result, err := r.db.ExecContext(ctx, query, quantity, id)
	if err != nil {
		return fmt.Errorf("error decrementing stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for product %s: %w", id, err)
	}
	if rowsAffected == 0 {
		// Distinguir producto inexistente de stock insuficiente
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return entity.NewLineError(id, "", entity.ErrInsufficientStock)
	}

	return nil
}

// SetStock reemplaza el stock de un producto
func (r *ProductPostgresRepository) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	if stock < 0 {
		return entity.ErrInvalidStockValue
	}

	query := `
		UPDATE products
		SET stock = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, stock, id)
	if err != nil {
		return fmt.Errorf("error updating stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for product %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return entity.ErrProductNotFound
	}

	return nil
}

func (r *ProductPostgresRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*entity.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning product: %w", err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	p := &entity.Product{}
	var minStock sql.NullInt64
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Stock,
		&p.Category,
		&p.Barcode,
		&minStock,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if minStock.Valid {
		v := int(minStock.Int64)
		p.MinStock = &v
	}
	return p, nil
}
