package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk/internal/model"
)

// helperTestOrder - заказ для тестов
var helperTestOrder = model.Order{
	ClientID:       10,
	ShopID:         1,
	Summ:           15000,
	Status:         model.StatusCreated,
	CreatedDate:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	CreatedSeconds: 36000,
	CourierID:      7,
}

func TestOrderRepository_GetAll_Success(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()
	order := helperTestOrder

	rows := sqlmock.NewRows([]string{
		"id", "client_id", "shop_id", "summ", "status", "created_date", "created_seconds", "courier_id",
	}).AddRow(
		1, order.ClientID, order.ShopID, order.Summ, order.Status.String(),
		order.CreatedDate, order.CreatedSeconds, order.CourierID,
	)
	mock.ExpectQuery(`SELECT id, client_id, shop_id, summ, status`).WillReturnRows(rows)

	orders, err := storage.Orders().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 1, orders[0].ID)
	assert.Equal(t, model.StatusCreated, orders[0].Status)
	assert.Equal(t, order.CreatedSeconds, orders[0].CreatedSeconds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Add_ReturnsAssignedID(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()
	order := helperTestOrder

	// Ключ назначает хранилище: id приходит из RETURNING.
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(order.ClientID, order.ShopID, order.Summ, order.Status.String(),
			order.CreatedDate, order.CreatedSeconds, order.CourierID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))

	id, err := storage.Orders().Add(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, 101, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Add_MissingForeignKey(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO orders`).
		WillReturnError(&pq.Error{Code: "23503"})

	id, err := storage.Orders().Add(ctx, helperTestOrder)
	assert.Zero(t, id)
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Update_Success(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()
	order := helperTestOrder
	order.ID = 5
	order.Status = model.StatusDelivered

	mock.ExpectExec(`UPDATE orders SET`).
		WithArgs(order.ClientID, order.ShopID, order.Summ, order.Status.String(),
			order.CreatedDate, order.CreatedSeconds, order.CourierID, order.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := storage.Orders().Update(ctx, order)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Update_NoRows(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()
	order := helperTestOrder
	order.ID = 404

	mock.ExpectExec(`UPDATE orders SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := storage.Orders().Update(ctx, order)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Delete_Success(t *testing.T) {
	storage, mock := setupStorageWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM orders`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := storage.Orders().Delete(ctx, 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
