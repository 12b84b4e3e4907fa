package database

import (
	"context"

	"shopdesk/internal/metrics"
	"shopdesk/internal/model"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/trace"
)

// orderRepository - доступ к таблице orders.
type orderRepository struct {
	db     *sqlx.DB
	tracer trace.Tracer
}

// GetAll возвращает все заказы.
func (r *orderRepository) GetAll(ctx context.Context) ([]model.Order, error) {
	ctx, span := r.tracer.Start(ctx, "DB.Orders.GetAll")
	defer span.End()

	orders := make([]model.Order, 0)
	query := `
		SELECT id, client_id, shop_id, summ, status, created_date, created_seconds, courier_id
		FROM orders
		ORDER BY id`
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		metrics.DBErrors.WithLabelValues("get_all_orders").Inc()
		return nil, classifyReadError(err)
	}
	return orders, nil
}

// Add вставляет заказ. Ключ назначается хранилищем: входной id
// игнорируется, присвоенный возвращается через RETURNING.
func (r *orderRepository) Add(ctx context.Context, order model.Order) (int, error) {
	ctx, span := r.tracer.Start(ctx, "DB.Orders.Add")
	defer span.End()

	var id int
	query := `
		INSERT INTO orders (client_id, shop_id, summ, status, created_date, created_seconds, courier_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.db.GetContext(ctx, &id, query,
		order.ClientID, order.ShopID, order.Summ, order.Status.String(),
		order.CreatedDate, order.CreatedSeconds, order.CourierID)
	if err != nil {
		metrics.DBErrors.WithLabelValues("add_order").Inc()
		return 0, classifyWriteError(err)
	}
	return id, nil
}

// Update полностью заменяет строку по первичному ключу.
func (r *orderRepository) Update(ctx context.Context, order model.Order) error {
	ctx, span := r.tracer.Start(ctx, "DB.Orders.Update")
	defer span.End()

	query := `
		UPDATE orders
		SET client_id = $1, shop_id = $2, summ = $3, status = $4,
		    created_date = $5, created_seconds = $6, courier_id = $7
		WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query,
		order.ClientID, order.ShopID, order.Summ, order.Status.String(),
		order.CreatedDate, order.CreatedSeconds, order.CourierID, order.ID)
	if err != nil {
		metrics.DBErrors.WithLabelValues("update_order").Inc()
		return classifyWriteError(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет заказ по первичному ключу. На заказы никто не
// ссылается, поэтому удаление блокируется только ошибкой соединения.
func (r *orderRepository) Delete(ctx context.Context, id int) error {
	ctx, span := r.tracer.Start(ctx, "DB.Orders.Delete")
	defer span.End()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		metrics.DBErrors.WithLabelValues("delete_order").Inc()
		return classifyDeleteError(err)
	}
	return nil
}
