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

const selectCustomerColumns = `SELECT id, name, email, phone, address FROM customers`

// CustomerPostgresRepository implementa CustomerRepository usando PostgreSQL
type CustomerPostgresRepository struct {
	db        *sql.DB
	converter *criteria.SQLCriteriaConverter
}

func NewCustomerPostgresRepository(db *sql.DB) *CustomerPostgresRepository {
	return &CustomerPostgresRepository{
		db:        db,
		converter: criteria.NewSQLCriteriaConverter(),
	}
}

var _ port.CustomerRepository = (*CustomerPostgresRepository)(nil)

func (r *CustomerPostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx, selectCustomerColumns+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding customer: %w", err)
	}
	return c, nil
}

// Search filtra por nombre o email (sin distinguir mayúsculas) y teléfono
func (r *CustomerPostgresRepository) Search(ctx context.Context, term string) ([]*entity.Customer, error) {
	filters := domainCriteria.NewFilters()
	if term = strings.TrimSpace(term); term != "" {
		filters.Add(domainCriteria.AnyOf(
			domainCriteria.Filter{Field: "name", Operator: domainCriteria.OpILike, Value: term},
			domainCriteria.Filter{Field: "email", Operator: domainCriteria.OpILike, Value: term},
			domainCriteria.Filter{Field: "phone", Operator: domainCriteria.OpLike, Value: term},
		))
	}

	query, params := r.converter.ToSelectSQL(selectCustomerColumns,
		domainCriteria.NewCriteria(filters, domainCriteria.NewOrder("name", domainCriteria.ASC), nil, nil))

	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("error querying customers: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}
	return customers, nil
}

func (r *CustomerPostgresRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.Address)
	if err != nil {
		return fmt.Errorf("error inserting customer: %w", err)
	}
	return nil
}

func (r *CustomerPostgresRepository) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, address = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		customer.Name, customer.Email, customer.Phone, customer.Address, customer.ID)
	if err != nil {
		return fmt.Errorf("error updating customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for customer %s: %w", customer.ID, err)
	}
	if rowsAffected == 0 {
		return entity.ErrCustomerNotFound
	}
	return nil
}

func scanCustomer(row rowScanner) (*entity.Customer, error) {
	c := &entity.Customer{}
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address); err != nil {
		return nil, err
	}
	return c, nil
}
