// Package state владеет коллекциями сущностей в памяти и дисциплиной
// их синхронизации с хранилищем: полная перезагрузка после каждой
// успешной мутации, откат копии в памяти после неудачного обновления.
package state

import (
	"context"
	"sync"

	"shopdesk/internal/database"
	"shopdesk/internal/metrics"
	"shopdesk/internal/model"

	"github.com/rs/zerolog/log"
)

// Coordinator оркестрирует загрузку и мутации всех четырех коллекций.
// Мутации сериализованы одним мьютексом: две операции с хранилищем
// никогда не выполняются одновременно, кроме стартовой загрузки,
// где каждая сущность пишет в свой, ни с кем не разделяемый контейнер.
type Coordinator struct {
	mu      sync.Mutex
	storage database.Storage

	products *collection[model.Product]
	shops    *collection[model.Shop]
	couriers *collection[model.Courier]
	orders   *collection[model.Order]
}

// New создает координатор поверх хранилища. Коллекции в состоянии Unloaded.
func New(storage database.Storage) *Coordinator {
	return &Coordinator{
		storage:  storage,
		products: newCollection(func(p model.Product) int { return p.ID }),
		shops:    newCollection(func(s model.Shop) int { return s.ID }),
		couriers: newCollection(func(c model.Courier) int { return c.ID }),
		orders:   newCollection(func(o model.Order) int { return o.ID }),
	}
}

// HealthCheck - стартовая проверка: пробное чтение таблицы магазинов.
// Единственная внешняя проверка живости; при ошибке процесс прерывается.
func (c *Coordinator) HealthCheck(ctx context.Context) error {
	_, err := c.storage.Shops().GetAll(ctx)
	return err
}

// LoadAll загружает все четыре коллекции параллельно и дожидается
// завершения. Каждая загрузка защищена независимо: неудача одной
// не блокирует остальные.
func (c *Coordinator) LoadAll(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(4)
	go func() { defer wg.Done(); c.reloadProducts(ctx) }()
	go func() { defer wg.Done(); c.reloadShops(ctx) }()
	go func() { defer wg.Done(); c.reloadCouriers(ctx) }()
	go func() { defer wg.Done(); c.reloadOrders(ctx) }()
	wg.Wait()
}

// --- Товары ---

// Products возвращает копию коллекции товаров и ее статус.
func (c *Coordinator) Products() ([]model.Product, Status) {
	return c.products.get()
}

func (c *Coordinator) reloadProducts(ctx context.Context) error {
	c.products.beginLoad()
	items, err := c.storage.Products().GetAll(ctx)
	if err != nil {
		c.products.failLoad()
		log.Error().Err(err).Msg("Не удалось загрузить товары")
		return err
	}
	c.products.completeLoad(items)
	metrics.StateReloads.WithLabelValues("product").Inc()
	return nil
}

// AddProduct вставляет товар и перезагружает коллекцию.
func (c *Coordinator) AddProduct(ctx context.Context, product model.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.storage.Products().Add(ctx, product); err != nil {
		return err
	}
	c.afterMutation(ctx, "product", c.reloadProducts)
	return nil
}

// UpdateProduct правит копию в памяти, пишет в хранилище и при
// неудаче восстанавливает копию из снимка.
func (c *Coordinator) UpdateProduct(ctx context.Context, product model.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot, staged := c.products.stage(product)
	if err := c.storage.Products().Update(ctx, product); err != nil {
		if staged {
			c.products.restore(snapshot)
			metrics.StateRollbacks.WithLabelValues("product").Inc()
		}
		return err
	}
	c.afterMutation(ctx, "product", c.reloadProducts)
	return nil
}

// DeleteProduct удаляет товар и перезагружает коллекцию.
// При отказе ссылочной целостности коллекция не меняется.
func (c *Coordinator) DeleteProduct(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.storage.Products().Delete(ctx, id); err != nil {
		return err
	}
	c.afterMutation(ctx, "product", c.reloadProducts)
	return nil
}

// --- Магазины ---

// Shops возвращает копию коллекции магазинов и ее статус.
func (c *Coordinator) Shops() ([]model.Shop, Status) {
	return c.shops.get()
}

func (c *Coordinator) reloadShops(ctx context.Context) error {
	c.shops.beginLoad()
	items, err := c.storage.Shops().GetAll(ctx)
	if err != nil {
		c.shops.failLoad()
		log.Error().Err(err).Msg("Не удалось загрузить магазины")
		return err
	}
	c.shops.completeLoad(items)
	metrics.StateReloads.WithLabelValues("shop").Inc()
	return nil
}

// AddShop вставляет магазин и перезагружает коллекцию.
func (c *Coordinator) AddShop(ctx context.Context, shop model.Shop) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.storage.Shops().Add(ctx, shop); err != nil {
		return err
	}
	c.afterMutation(ctx, "shop", c.reloadShops)
	return nil
}

// UpdateShop правит копию в памяти, пишет в хранилище и при
// неудаче восстанавливает копию из снимка.
func (c *Coordinator) UpdateShop(ctx context.Context, shop model.Shop) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot, staged := c.shops.stage(shop)
	if err := c.storage.Shops().Update(ctx, shop); err != nil {
		if staged {
			c.shops.restore(snapshot)
			metrics.StateRollbacks.WithLabelValues("shop").Inc()
		}
		return err
	}
	c.afterMutation(ctx, "shop", c.reloadShops)
	return nil
}

// DeleteShop удаляет магазин и перезагружает коллекцию.
func (c *Coordinator) DeleteShop(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.storage.Shops().Delete(ctx, id); err != nil {
		return err
	}
	c.afterMutation(ctx, "shop", c.reloadShops)
	return nil
}

// --- Курьеры ---

// Couriers возвращает копию коллекции курьеров и ее статус.
func (c *Coordinator) Couriers() ([]model.Courier, Status) {
	return c.couriers.get()
}

func (c *Coordinator) reloadCouriers(ctx context.Context) error {
	c.couriers.beginLoad()
	items, err := c.storage.Couriers().GetAll(ctx)
	if err != nil {
		c.couriers.failLoad()
		log.Error().Err(err).Msg("Не удалось загрузить курьеров")
		return err
	}
	c.couriers.completeLoad(items)
	metrics.StateReloads.WithLabelValues("courier").Inc()
	return nil
}

// AddCourier вставляет курьера, возвращает присвоенный хранилищем id
// и перезагружает коллекцию.
func (c *Coordinator) AddCourier(ctx context.Context, courier model.Courier) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, err := c.storage.Couriers().Add(ctx, courier)
	if err != nil {
		return 0, err
	}
	c.afterMutation(ctx, "courier", c.reloadCouriers)
	return id, nil
}

// UpdateCourier правит копию в памяти, пишет в хранилище и при
// неудаче восстанавливает копию из снимка.
func (c *Coordinator) UpdateCourier(ctx context.Context, courier model.Courier) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot, staged := c.couriers.stage(courier)
	if err := c.storage.Couriers().Update(ctx, courier); err != nil {
		if staged {
			c.couriers.restore(snapshot)
			metrics.StateRollbacks.WithLabelValues("courier").Inc()
		}
		return err
	}
	c.afterMutation(ctx, "courier", c.reloadCouriers)
	return nil
}

// DeleteCourier удаляет курьера и перезагружает коллекцию.
func (c *Coordinator) DeleteCourier(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.storage.Couriers().Delete(ctx, id); err != nil {
		return err
	}
	c.afterMutation(ctx, "courier", c.reloadCouriers)
	return nil
}

// --- Заказы ---

// Orders возвращает копию коллекции заказов и ее статус.
func (c *Coordinator) Orders() ([]model.Order, Status) {
	return c.orders.get()
}

func (c *Coordinator) reloadOrders(ctx context.Context) error {
	c.orders.beginLoad()
	items, err := c.storage.Orders().GetAll(ctx)
	if err != nil {
		c.orders.failLoad()
		log.Error().Err(err).Msg("Не удалось загрузить заказы")
		return err
	}
	c.orders.completeLoad(items)
	metrics.StateReloads.WithLabelValues("order").Inc()
	return nil
}

// AddOrder вставляет заказ, возвращает присвоенный хранилищем id
// и перезагружает коллекцию.
func (c *Coordinator) AddOrder(ctx context.Context, order model.Order) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, err := c.storage.Orders().Add(ctx, order)
	if err != nil {
		return 0, err
	}
	c.afterMutation(ctx, "order", c.reloadOrders)
	return id, nil
}

// UpdateOrder правит копию в памяти, пишет в хранилище и при
// неудаче восстанавливает копию из снимка.
func (c *Coordinator) UpdateOrder(ctx context.Context, order model.Order) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot, staged := c.orders.stage(order)
	if err := c.storage.Orders().Update(ctx, order); err != nil {
		if staged {
			c.orders.restore(snapshot)
			metrics.StateRollbacks.WithLabelValues("order").Inc()
		}
		return err
	}
	c.afterMutation(ctx, "order", c.reloadOrders)
	return nil
}

// DeleteOrder удаляет заказ и перезагружает коллекцию.
func (c *Coordinator) DeleteOrder(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.storage.Orders().Delete(ctx, id); err != nil {
		return err
	}
	c.afterMutation(ctx, "order", c.reloadOrders)
	return nil
}

// afterMutation выполняет безусловную перезагрузку коллекции после
// успешной записи. Неудача перезагрузки не отменяет состоявшуюся
// запись: она логируется и отражается в статусе коллекции.
func (c *Coordinator) afterMutation(ctx context.Context, entity string, reload func(context.Context) error) {
	if err := reload(ctx); err != nil {
		log.Warn().Err(err).Str("entity", entity).Msg("Запись выполнена, но перезагрузка коллекции не удалась")
	}
}
