package database

import (
	"context"

	"shopdesk/internal/metrics"
	"shopdesk/internal/model"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/trace"
)

// productRepository - доступ к таблице products.
type productRepository struct {
	db     *sqlx.DB
	tracer trace.Tracer
}

// GetAll возвращает все товары.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	ctx, span := r.tracer.Start(ctx, "DB.Products.GetAll")
	defer span.End()

	products := make([]model.Product, 0)
	if err := r.db.SelectContext(ctx, &products, `SELECT id, price FROM products ORDER BY id`); err != nil {
		metrics.DBErrors.WithLabelValues("get_all_products").Inc()
		return nil, classifyReadError(err)
	}
	return products, nil
}

// Add вставляет товар. Ключ назначается пользователем, поэтому id
// передается явно; нарушение уникальности ловит движок БД.
func (r *productRepository) Add(ctx context.Context, product model.Product) error {
	ctx, span := r.tracer.Start(ctx, "DB.Products.Add")
	defer span.End()

	query := `INSERT INTO products (id, price) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, product.ID, product.Price); err != nil {
		metrics.DBErrors.WithLabelValues("add_product").Inc()
		return classifyWriteError(err)
	}
	return nil
}

// Update полностью заменяет строку по первичному ключу.
// Нулевое число затронутых строк считается ошибкой ErrNotFound.
func (r *productRepository) Update(ctx context.Context, product model.Product) error {
	ctx, span := r.tracer.Start(ctx, "DB.Products.Update")
	defer span.End()

	query := `UPDATE products SET price = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, product.Price, product.ID)
	if err != nil {
		metrics.DBErrors.WithLabelValues("update_product").Inc()
		return classifyWriteError(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет товар по первичному ключу. Если на товар ссылаются
// магазины, движок БД отклонит удаление.
func (r *productRepository) Delete(ctx context.Context, id int) error {
	ctx, span := r.tracer.Start(ctx, "DB.Products.Delete")
	defer span.End()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		metrics.DBErrors.WithLabelValues("delete_product").Inc()
		return classifyDeleteError(err)
	}
	return nil
}

// Exists проверяет наличие товара. Используется как предварительная
// проверка внешнего ключа перед записью магазина.
func (r *productRepository) Exists(ctx context.Context, id int) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "DB.Products.Exists")
	defer span.End()

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		metrics.DBErrors.WithLabelValues("exists_product").Inc()
		return false, classifyReadError(err)
	}
	return exists, nil
}
