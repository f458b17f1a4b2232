package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"
	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/port"
	domainCriteria "github.com/TSaugineta225/vendendo-facil/src/shared/domain/criteria"
	"github.com/TSaugineta225/vendendo-facil/src/shared/infrastructure/criteria"

	"github.com/google/uuid"
)

const selectSaleColumns = `
	SELECT
		id, customer_id, cashier_id, total_amount, discount_amount,
		tax_amount, payment_method, notes, created_at
	FROM sales`

// SalePostgresRepository implementa SaleRepository y SaleCommitter usando PostgreSQL
type SalePostgresRepository struct {
	db        *sql.DB
	converter *criteria.SQLCriteriaConverter
}

// NewSalePostgresRepository crea una nueva instancia del repositorio
func NewSalePostgresRepository(db *sql.DB) *SalePostgresRepository {
	return &SalePostgresRepository{
		db:        db,
		converter: criteria.NewSQLCriteriaConverter(),
	}
}

var (
	_ port.SaleRepository = (*SalePostgresRepository)(nil)
	_ port.SaleCommitter  = (*SalePostgresRepository)(nil)
)

// Create persiste la venta con sus items en una transacción, sin tocar el stock
func (r *SalePostgresRepository) Create(ctx context.Context, sale *entity.Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertSale(ctx, tx, sale); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// CommitSale persiste venta, items y descuentos de stock en una sola transacción.
// El descuento es condicional (stock >= cantidad); si algún producto no alcanza
// se hace rollback de todo y se retorna ErrInsufficientStock para ese producto.
func (r *SalePostgresRepository) CommitSale(ctx context.Context, sale *entity.Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertSale(ctx, tx, sale); err != nil {
		return err
	}

	queryStock := `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`

	for _, item := range sale.Items {
		result, err := tx.ExecContext(ctx, queryStock, item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("error decrementing stock for product %s: %w", item.ProductID, err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("error reading rows affected for product %s: %w", item.ProductID, err)
		}
		if rowsAffected == 0 {
			return entity.NewLineError(item.ProductID, item.ProductName, entity.ErrInsufficientStock)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

func insertSale(ctx context.Context, tx *sql.Tx, sale *entity.Sale) error {
	querySale := `
		INSERT INTO sales (
			id, customer_id, cashier_id, total_amount, discount_amount,
			tax_amount, payment_method, notes, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := tx.ExecContext(ctx, querySale,
		sale.ID,
		sale.CustomerID, // NULL permitido
		sale.CashierID,
		sale.TotalAmount,
		sale.DiscountAmount,
		sale.TaxAmount,
		string(sale.PaymentMethod),
		sale.Notes,
		sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating sale: %w", err)
	}

	queryItem := `
		INSERT INTO sale_items (
			id, sale_id, product_id, quantity, unit_price,
			discount_percentage, total_price, position
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	for i, item := range sale.Items {
		_, err = tx.ExecContext(ctx, queryItem,
			item.ID,
			sale.ID,
			item.ProductID,
			item.Quantity,
			item.UnitPrice,
			item.DiscountPercentage,
			item.TotalPrice,
			i,
		)
		if err != nil {
			return fmt.Errorf("error creating sale_item for product %s: %w", item.ProductID, err)
		}
	}

	return nil
}

// FindByID carga una venta con sus items
func (r *SalePostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := scanSale(r.db.QueryRowContext(ctx, selectSaleColumns+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding sale: %w", err)
	}

	if sale.Items, err = r.loadItems(ctx, sale.ID); err != nil {
		return nil, err
	}
	return sale, nil
}

// List retorna las ventas que cumplen el filtro, con sus items
func (r *SalePostgresRepository) List(ctx context.Context, filter port.SaleFilter) ([]*entity.Sale, error) {
	filters := domainCriteria.NewFilters()
	if filter.From != nil {
		filters.Add(domainCriteria.Filter{Field: "created_at", Operator: domainCriteria.OpGreaterThanOrEqual, Value: *filter.From})
	}
	if filter.To != nil {
		filters.Add(domainCriteria.Filter{Field: "created_at", Operator: domainCriteria.OpLessThan, Value: *filter.To})
	}
	if filter.PaymentMethod != nil {
		filters.Add(domainCriteria.Filter{Field: "payment_method", Operator: domainCriteria.OpEqual, Value: string(*filter.PaymentMethod)})
	}

	var limit *int
	if filter.Limit > 0 {
		limit = &filter.Limit
	}

	query, params := r.converter.ToSelectSQL(selectSaleColumns,
		domainCriteria.NewCriteria(filters, domainCriteria.NewOrder("created_at", domainCriteria.DESC), limit, nil))

	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("error querying sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning sale: %w", err)
		}
		sales = append(sales, sale)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}

	// N+1 simple: los listados están limitados
	for _, sale := range sales {
		if sale.Items, err = r.loadItems(ctx, sale.ID); err != nil {
			return nil, err
		}
	}

	return sales, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSale(row rowScanner) (*entity.Sale, error) {
	sale := &entity.Sale{}
	var paymentMethod string
	err := row.Scan(
		&sale.ID,
		&sale.CustomerID,
		&sale.CashierID,
		&sale.TotalAmount,
		&sale.DiscountAmount,
		&sale.TaxAmount,
		&paymentMethod,
		&sale.Notes,
		&sale.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	sale.PaymentMethod = entity.PaymentMethod(paymentMethod)
	return sale, nil
}

func (r *SalePostgresRepository) loadItems(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error) {
	queryItems := `
		SELECT
			si.id, si.sale_id, si.product_id, COALESCE(p.name, 'Produto'),
			si.quantity, si.unit_price, si.discount_percentage, si.total_price
		FROM sale_items si
		LEFT JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = $1
		ORDER BY si.position
	`

	rows, err := r.db.QueryContext(ctx, queryItems, saleID)
	if err != nil {
		return nil, fmt.Errorf("error querying sale_items: %w", err)
	}
	defer rows.Close()

	var items []entity.SaleItem
	for rows.Next() {
		var item entity.SaleItem
		err := rows.Scan(
			&item.ID,
			&item.SaleID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
			&item.DiscountPercentage,
			&item.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning sale_item: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale_items: %w", err)
	}

	return items, nil
}
