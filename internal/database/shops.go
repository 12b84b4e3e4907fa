package database

import (
	"context"

	"shopdesk/internal/metrics"
	"shopdesk/internal/model"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/trace"
)

// shopRepository - доступ к таблице shops.
type shopRepository struct {
	db     *sqlx.DB
	tracer trace.Tracer
}

// GetAll возвращает все магазины.
func (r *shopRepository) GetAll(ctx context.Context) ([]model.Shop, error) {
	ctx, span := r.tracer.Start(ctx, "DB.Shops.GetAll")
	defer span.End()

	shops := make([]model.Shop, 0)
	if err := r.db.SelectContext(ctx, &shops, `SELECT id, rating, product_id FROM shops ORDER BY id`); err != nil {
		metrics.DBErrors.WithLabelValues("get_all_shops").Inc()
		return nil, classifyReadError(err)
	}
	return shops, nil
}

// Add вставляет магазин. Ключ назначается пользователем.
func (r *shopRepository) Add(ctx context.Context, shop model.Shop) error {
	ctx, span := r.tracer.Start(ctx, "DB.Shops.Add")
	defer span.End()

	query := `INSERT INTO shops (id, rating, product_id) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, shop.ID, shop.Rating, shop.ProductID); err != nil {
		metrics.DBErrors.WithLabelValues("add_shop").Inc()
		return classifyWriteError(err)
	}
	return nil
}

// Update полностью заменяет строку по первичному ключу.
func (r *shopRepository) Update(ctx context.Context, shop model.Shop) error {
	ctx, span := r.tracer.Start(ctx, "DB.Shops.Update")
	defer span.End()

	query := `UPDATE shops SET rating = $1, product_id = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, shop.Rating, shop.ProductID, shop.ID)
	if err != nil {
		metrics.DBErrors.WithLabelValues("update_shop").Inc()
		return classifyWriteError(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет магазин по первичному ключу. Если на магазин
// ссылаются заказы, движок БД отклонит удаление.
func (r *shopRepository) Delete(ctx context.Context, id int) error {
	ctx, span := r.tracer.Start(ctx, "DB.Shops.Delete")
	defer span.End()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM shops WHERE id = $1`, id); err != nil {
		metrics.DBErrors.WithLabelValues("delete_shop").Inc()
		return classifyDeleteError(err)
	}
	return nil
}

// Exists проверяет наличие магазина. Используется как предварительная
// проверка внешнего ключа перед записью заказа.
func (r *shopRepository) Exists(ctx context.Context, id int) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "DB.Shops.Exists")
	defer span.End()

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM shops WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		metrics.DBErrors.WithLabelValues("exists_shop").Inc()
		return false, classifyReadError(err)
	}
	return exists, nil
}
