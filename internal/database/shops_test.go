package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk/internal/model"
)

// setupStorageWithMock настраивает postgresStorage с моком sqlx.DB
func setupStorageWithMock(t *testing.T) (*postgresStorage, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("не удалось создать sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	sqlxDB := sqlx.NewDb(db, "postgres")
	return newStorage(sqlxDB), mock
}

func TestShopRepository_GetAll_Success(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "rating", "product_id"}).
		AddRow(1, 4.5, 1).
		AddRow(2, 3.0, 2)
	mock.ExpectQuery(`SELECT id, rating, product_id FROM shops`).WillReturnRows(rows)

	shops, err := storage.Shops().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, shops, 2)
	assert.Equal(t, model.Shop{ID: 1, Rating: 4.5, ProductID: 1}, shops[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopRepository_GetAll_StorageError(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT id, rating, product_id FROM shops`).
		WillReturnError(errors.New("connection refused"))

	shops, err := storage.Shops().GetAll(ctx)
	assert.Nil(t, shops)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopRepository_Add_Success(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()
	shop := model.Shop{ID: 1, Rating: 4.5, ProductID: 1}

	mock.ExpectExec(`INSERT INTO shops`).
		WithArgs(shop.ID, shop.Rating, shop.ProductID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := storage.Shops().Add(ctx, shop)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopRepository_Add_DuplicateKey(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO shops`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := storage.Shops().Add(ctx, model.Shop{ID: 1, Rating: 4.5, ProductID: 1})
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopRepository_Add_MissingForeignKey(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	// Вторая линия обороны: предварительная Exists-проверка могла
	// проскочить, движок БД все равно отклонит вставку.
	mock.ExpectExec(`INSERT INTO shops`).
		WillReturnError(&pq.Error{Code: "23503"})

	err := storage.Shops().Add(ctx, model.Shop{ID: 2, Rating: 3.0, ProductID: 999})
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopRepository_Update_Success(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()
	shop := model.Shop{ID: 1, Rating: 2.5, ProductID: 3}

	mock.ExpectExec(`UPDATE shops SET`).
		WithArgs(shop.Rating, shop.ProductID, shop.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := storage.Shops().Update(ctx, shop)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopRepository_Update_NoRows(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE shops SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := storage.Shops().Update(ctx, model.Shop{ID: 42, Rating: 1.0, ProductID: 1})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopRepository_Delete_Success(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM shops`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := storage.Shops().Delete(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopRepository_Delete_Referenced(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	// Магазин, на который ссылаются заказы, удалить нельзя.
	mock.ExpectExec(`DELETE FROM shops`).
		WithArgs(1).
		WillReturnError(&pq.Error{Code: "23503"})

	err := storage.Shops().Delete(ctx, 1)
	assert.ErrorIs(t, err, ErrReferentialIntegrity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopRepository_Exists(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := storage.Shops().Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err = storage.Shops().Exists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
