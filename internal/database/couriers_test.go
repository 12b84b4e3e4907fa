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

func TestCourierRepository_GetAll_Success(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "rating"}).
		AddRow(1, 4.9).
		AddRow(2, 0.0)
	mock.ExpectQuery(`SELECT id, rating FROM couriers`).WillReturnRows(rows)

	couriers, err := storage.Couriers().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, couriers, 2)
	assert.Equal(t, model.Courier{ID: 1, Rating: 4.9}, couriers[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourierRepository_Add_ReturnsAssignedID(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	// Входной id игнорируется: ключ назначает хранилище.
	mock.ExpectQuery(`INSERT INTO couriers`).
		WithArgs(4.2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := storage.Couriers().Add(ctx, model.Courier{ID: 999, Rating: 4.2})
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourierRepository_Update_NoRows(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE couriers SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := storage.Couriers().Update(ctx, model.Courier{ID: 42, Rating: 3.3})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourierRepository_Delete_Referenced(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	// Курьер, на которого ссылаются заказы, удалить нельзя.
	mock.ExpectExec(`DELETE FROM couriers`).
		WithArgs(1).
		WillReturnError(&pq.Error{Code: "23503"})

	err := storage.Couriers().Delete(ctx, 1)
	assert.ErrorIs(t, err, ErrReferentialIntegrity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourierRepository_Exists_StorageError(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(1).
		WillReturnError(assert.AnError)

	exists, err := storage.Couriers().Exists(ctx, 1)
	assert.False(t, exists)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
