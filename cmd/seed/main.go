// Заполнение dev-базы случайными данными через репозитории.
// Вставка идет в порядке внешних ключей: товары, магазины, курьеры, заказы.
package main

import (
	"context"
	"flag"
	"time"

	"shopdesk/internal/config"
	"shopdesk/internal/database"
	"shopdesk/internal/generator"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog/log"
)

func main() {
	products := flag.Int("products", 10, "количество товаров")
	shops := flag.Int("shops", 5, "количество магазинов")
	couriers := flag.Int("couriers", 8, "количество курьеров")
	orders := flag.Int("orders", 50, "количество заказов")
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())
	cfg := config.Get()

	storage, err := database.New(cfg.Postgres.URL, cfg.Postgres.MigrationsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Не удалось открыть хранилище")
	}
	defer storage.Close()

	ctx := context.Background()

	var productIDs []int
	for i := 1; i <= *products; i++ {
		product := generator.NewProduct(i)
		if err := storage.Products().Add(ctx, product); err != nil {
			log.Warn().Err(err).Int("id", product.ID).Msg("Пропуск товара")
			continue
		}
		productIDs = append(productIDs, product.ID)
	}
	if len(productIDs) == 0 {
		log.Fatal().Msg("Ни один товар не вставлен, продолжать нет смысла")
	}

	var shopIDs []int
	for i := 1; i <= *shops; i++ {
		shop := generator.NewShop(i, productIDs[gofakeit.Number(0, len(productIDs)-1)])
		if err := storage.Shops().Add(ctx, shop); err != nil {
			log.Warn().Err(err).Int("id", shop.ID).Msg("Пропуск магазина")
			continue
		}
		shopIDs = append(shopIDs, shop.ID)
	}

	var courierIDs []int
	for i := 0; i < *couriers; i++ {
		id, err := storage.Couriers().Add(ctx, generator.NewCourier())
		if err != nil {
			log.Warn().Err(err).Msg("Пропуск курьера")
			continue
		}
		courierIDs = append(courierIDs, id)
	}

	if len(shopIDs) == 0 || len(courierIDs) == 0 {
		log.Fatal().Msg("Нет магазинов или курьеров для заказов")
	}

	inserted := 0
	for i := 0; i < *orders; i++ {
		order := generator.NewOrder(
			shopIDs[gofakeit.Number(0, len(shopIDs)-1)],
			courierIDs[gofakeit.Number(0, len(courierIDs)-1)],
		)
		if _, err := storage.Orders().Add(ctx, order); err != nil {
			log.Warn().Err(err).Msg("Пропуск заказа")
			continue
		}
		inserted++
	}

	log.Info().
		Int("products", len(productIDs)).
		Int("shops", len(shopIDs)).
		Int("couriers", len(courierIDs)).
		Int("orders", inserted).
		Msg("База заполнена")
}
