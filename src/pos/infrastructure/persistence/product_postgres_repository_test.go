package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{"id", "name", "price", "stock", "category", "barcode", "min_stock", "updated_at"}

func TestProductPostgresRepository_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(`WHERE \(name ILIKE \$1 ESCAPE '\\' OR category ILIKE \$2 ESCAPE '\\' OR barcode LIKE \$3 ESCAPE '\\'\) ORDER BY name ASC`).
		WithArgs("%coca%", "%coca%", "%coca%").
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(id.String(), "Coca-Cola 350ml", "2.50", 50, "Bebidas", "7891000", 10, time.Now()))

	products, err := NewProductPostgresRepository(db).Search(context.Background(), "  coca ")
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, id, p.ID)
	assert.Equal(t, "2.50", p.Price.StringFixed(2))
	require.NotNil(t, p.Barcode)
	assert.Equal(t, "7891000", *p.Barcode)
	require.NotNil(t, p.MinStock)
	assert.Equal(t, 10, *p.MinStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductPostgresRepository_SearchTreatsWildcardsLiterally(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM products WHERE").
		WithArgs(`%50\%\_%`, `%50\%\_%`, `%50\%\_%`).
		WillReturnRows(sqlmock.NewRows(productCols))

	products, err := NewProductPostgresRepository(db).Search(context.Background(), "50%_")
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductPostgresRepository_SearchEmptyTermListsAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM products ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(uuid.New().String(), "Pão", "0.50", 100, "Padaria", nil, nil, time.Now()))

	products, err := NewProductPostgresRepository(db).Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductPostgresRepository_FindByIDNullables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery("FROM products WHERE id = \\$1").WithArgs(id).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(id.String(), "Pão", "0.50", 100, "Padaria", nil, nil, time.Now()))

	p, err := NewProductPostgresRepository(db).FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, p.Barcode)
	assert.Nil(t, p.MinStock)
	assert.False(t, p.IsLowStock())
}

func TestProductPostgresRepository_DecrementStock(t *testing.T) {
	t.Run("applied", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.New()
		mock.ExpectExec("UPDATE products").WithArgs(3, id).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewProductPostgresRepository(db).DecrementStock(context.Background(), id, 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insufficient stock", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.New()
		mock.ExpectExec("UPDATE products").WithArgs(3, id).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("FROM products WHERE id = \\$1").WithArgs(id).
			WillReturnRows(sqlmock.NewRows(productCols).
				AddRow(id.String(), "Arroz", "25.90", 2, "Grãos", nil, nil, time.Now()))

		err = NewProductPostgresRepository(db).DecrementStock(context.Background(), id, 3)
		assert.ErrorIs(t, err, entity.ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("product not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.New()
		mock.ExpectExec("UPDATE products").WithArgs(1, id).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("FROM products WHERE id = \\$1").WithArgs(id).
			WillReturnRows(sqlmock.NewRows(productCols))

		err = NewProductPostgresRepository(db).DecrementStock(context.Background(), id, 1)
		assert.ErrorIs(t, err, entity.ErrProductNotFound)
	})

	t.Run("rows affected error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.New()
		driverErr := errors.New("driver lost the result")
		mock.ExpectExec("UPDATE products").WithArgs(2, id).WillReturnResult(sqlmock.NewErrorResult(driverErr))

		err = NewProductPostgresRepository(db).DecrementStock(context.Background(), id, 2)
		assert.ErrorIs(t, err, driverErr)
		assert.NotErrorIs(t, err, entity.ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductPostgresRepository_SetStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductPostgresRepository(db)
	assert.ErrorIs(t, repo.SetStock(context.Background(), uuid.New(), -1), entity.ErrInvalidStockValue)

	missing := uuid.New()
	mock.ExpectExec("UPDATE products").WithArgs(5, missing).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetStock(context.Background(), missing, 5), entity.ErrProductNotFound)

	driverErr := errors.New("driver lost the result")
	mock.ExpectExec("UPDATE products").WithArgs(7, missing).WillReturnResult(sqlmock.NewErrorResult(driverErr))
	assert.ErrorIs(t, repo.SetStock(context.Background(), missing, 7), driverErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsPostgresRepository_AllAndUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT key, value FROM settings").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("tax_rate", "16").
			AddRow("company_name", "Loja Central"))
	mock.ExpectExec("INSERT INTO settings").WithArgs("tax_rate", "17").WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewSettingsPostgresRepository(db)
	values, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"tax_rate": "16", "company_name": "Loja Central"}, values)

	require.NoError(t, repo.Upsert(context.Background(), "tax_rate", "17"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
