package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk/internal/model"
)

func TestProductRepository_GetAll_Success(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "price"}).
		AddRow(1, 9.99).
		AddRow(2, 150.00)
	mock.ExpectQuery(`SELECT id, price FROM products`).WillReturnRows(rows)

	products, err := storage.Products().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, model.Product{ID: 1, Price: 9.99}, products[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetAll_Empty(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT id, price FROM products`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}))

	products, err := storage.Products().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Add_Success(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()
	product := model.Product{ID: 1, Price: 9.99}

	mock.ExpectExec(`INSERT INTO products`).
		WithArgs(product.ID, product.Price).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := storage.Products().Add(ctx, product)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Add_DuplicateKey(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO products`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := storage.Products().Add(ctx, model.Product{ID: 1, Price: 9.99})
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_NoRows(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE products SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := storage.Products().Update(ctx, model.Product{ID: 42, Price: 1.00})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Delete_Referenced(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	// Товар, на который ссылаются магазины, удалить нельзя.
	mock.ExpectExec(`DELETE FROM products`).
		WithArgs(1).
		WillReturnError(&pq.Error{Code: "23503"})

	err := storage.Products().Delete(ctx, 1)
	assert.ErrorIs(t, err, ErrReferentialIntegrity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Exists(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := storage.Products().Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
