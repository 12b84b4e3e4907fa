package database

import (
	"context"

	"shopdesk/internal/metrics"
	"shopdesk/internal/model"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/trace"
)

// courierRepository - доступ к таблице couriers.
type courierRepository struct {
	db     *sqlx.DB
	tracer trace.Tracer
}

// GetAll возвращает всех курьеров.
func (r *courierRepository) GetAll(ctx context.Context) ([]model.Courier, error) {
	ctx, span := r.tracer.Start(ctx, "DB.Couriers.GetAll")
	defer span.End()

	couriers := make([]model.Courier, 0)
	if err := r.db.SelectContext(ctx, &couriers, `SELECT id, rating FROM couriers ORDER BY id`); err != nil {
		metrics.DBErrors.WithLabelValues("get_all_couriers").Inc()
		return nil, classifyReadError(err)
	}
	return couriers, nil
}

// Add вставляет курьера. Ключ назначается хранилищем: входной id
// игнорируется, присвоенный возвращается через RETURNING.
func (r *courierRepository) Add(ctx context.Context, courier model.Courier) (int, error) {
	ctx, span := r.tracer.Start(ctx, "DB.Couriers.Add")
	defer span.End()

	var id int
	query := `INSERT INTO couriers (rating) VALUES ($1) RETURNING id`
	if err := r.db.GetContext(ctx, &id, query, courier.Rating); err != nil {
		metrics.DBErrors.WithLabelValues("add_courier").Inc()
		return 0, classifyWriteError(err)
	}
	return id, nil
}

// Update полностью заменяет строку по первичному ключу.
func (r *courierRepository) Update(ctx context.Context, courier model.Courier) error {
	ctx, span := r.tracer.Start(ctx, "DB.Couriers.Update")
	defer span.End()

	query := `UPDATE couriers SET rating = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, courier.Rating, courier.ID)
	if err != nil {
		metrics.DBErrors.WithLabelValues("update_courier").Inc()
		return classifyWriteError(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет курьера по первичному ключу. Если на курьера
// ссылаются заказы, движок БД отклонит удаление.
func (r *courierRepository) Delete(ctx context.Context, id int) error {
	ctx, span := r.tracer.Start(ctx, "DB.Couriers.Delete")
	defer span.End()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM couriers WHERE id = $1`, id); err != nil {
		metrics.DBErrors.WithLabelValues("delete_courier").Inc()
		return classifyDeleteError(err)
	}
	return nil
}

// Exists проверяет наличие курьера. Используется как предварительная
// проверка внешнего ключа перед записью заказа.
func (r *courierRepository) Exists(ctx context.Context, id int) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "DB.Couriers.Exists")
	defer span.End()

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM couriers WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		metrics.DBErrors.WithLabelValues("exists_courier").Inc()
		return false, classifyReadError(err)
	}
	return exists, nil
}
