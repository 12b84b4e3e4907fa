package database

import (
	"context"
	"errors"
	"fmt"

	"shopdesk/internal/model"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
)

//go:generate mockgen -source=postgres.go -destination=./mocks/storage_mock.go -package=mocks

// ProductRepository владеет всем доступом к таблице товаров.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]model.Product, error)
	Add(ctx context.Context, product model.Product) error
	Update(ctx context.Context, product model.Product) error
	Delete(ctx context.Context, id int) error
	Exists(ctx context.Context, id int) (bool, error)
}

// ShopRepository владеет всем доступом к таблице магазинов.
type ShopRepository interface {
	GetAll(ctx context.Context) ([]model.Shop, error)
	Add(ctx context.Context, shop model.Shop) error
	Update(ctx context.Context, shop model.Shop) error
	Delete(ctx context.Context, id int) error
	Exists(ctx context.Context, id int) (bool, error)
}

// CourierRepository владеет всем доступом к таблице курьеров.
// Ключ назначается хранилищем: Add возвращает присвоенный id.
type CourierRepository interface {
	GetAll(ctx context.Context) ([]model.Courier, error)
	Add(ctx context.Context, courier model.Courier) (int, error)
	Update(ctx context.Context, courier model.Courier) error
	Delete(ctx context.Context, id int) error
	Exists(ctx context.Context, id int) (bool, error)
}

// OrderRepository владеет всем доступом к таблице заказов.
// Ключ назначается хранилищем: Add возвращает присвоенный id.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]model.Order, error)
	Add(ctx context.Context, order model.Order) (int, error)
	Update(ctx context.Context, order model.Order) error
	Delete(ctx context.Context, id int) error
}

// Storage объединяет репозитории всех четырех сущностей.
type Storage interface {
	Products() ProductRepository
	Shops() ShopRepository
	Couriers() CourierRepository
	Orders() OrderRepository
	Close() error
}

// postgresStorage обеспечивает взаимодействие с базой данных PostgreSQL.
// Это конкретная реализация интерфейса Storage.
type postgresStorage struct {
	db       *sqlx.DB
	products *productRepository
	shops    *shopRepository
	couriers *courierRepository
	orders   *orderRepository
}

// New создает подключение к БД, применяет миграции и возвращает
// экземпляр, реализующий интерфейс Storage.
func New(dbURL, migrationsPath string) (Storage, error) {
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("%w: не удалось подключиться к БД: %v", ErrStorageUnavailable, err)
	}

	// Запуск миграций
	if err := runMigrations(dbURL, migrationsPath); err != nil {
		return nil, fmt.Errorf("ошибка применения миграций: %w", err)
	}

	return newStorage(db), nil
}

func newStorage(db *sqlx.DB) *postgresStorage {
	tracer := otel.Tracer("postgres-storage")
	return &postgresStorage{
		db:       db,
		products: &productRepository{db: db, tracer: tracer},
		shops:    &shopRepository{db: db, tracer: tracer},
		couriers: &courierRepository{db: db, tracer: tracer},
		orders:   &orderRepository{db: db, tracer: tracer},
	}
}

// runMigrations выполняет миграции БД до последней версии.
func runMigrations(dbURL, migrationsPath string) error {
	log.Info().Msg("Поиск и применение миграций...")

	// Важно: 'file://' префикс
	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), dbURL)
	if err != nil {
		return fmt.Errorf("не удалось создать экземпляр миграции: %w", err)
	}

	// Применяем миграции "вверх"
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("не удалось выполнить миграции: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("не удалось получить версию миграции: %w", err)
	}

	if dirty {
		log.Warn().Uint("version", version).Msg("БД в 'грязном' состоянии (dirty). Рекомендуется проверка.")
	}

	log.Info().Uint("version", version).Msg("Миграции успешно применены.")
	return nil
}

func (s *postgresStorage) Products() ProductRepository { return s.products }
func (s *postgresStorage) Shops() ShopRepository       { return s.shops }
func (s *postgresStorage) Couriers() CourierRepository { return s.couriers }
func (s *postgresStorage) Orders() OrderRepository     { return s.orders }

// Close закрывает соединение с БД.
func (s *postgresStorage) Close() error {
	return s.db.Close()
}
