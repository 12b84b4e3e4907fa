package generator

import (
	"time"

	"shopdesk/internal/model"

	"github.com/brianvoe/gofakeit/v6"
)

// Генерация правдоподобных тестовых записей для заполнения dev-базы.
// Внешние ключи подставляет вызывающий код: он знает, какие id
// реально существуют после вставки родительских строк.

// NewProduct возвращает случайный товар с заданным ключом.
func NewProduct(id int) model.Product {
	return model.Product{
		ID:    id,
		Price: gofakeit.Price(10, 50000),
	}
}

// NewShop возвращает случайный магазин, ссылающийся на существующий товар.
func NewShop(id, productID int) model.Shop {
	return model.Shop{
		ID:        id,
		Rating:    rating(),
		ProductID: productID,
	}
}

// NewCourier возвращает случайного курьера. Ключ назначит хранилище.
func NewCourier() model.Courier {
	return model.Courier{
		Rating: rating(),
	}
}

// NewOrder возвращает случайный заказ, ссылающийся на существующие
// магазин и курьера. Ключ назначит хранилище.
func NewOrder(shopID, courierID int) model.Order {
	statuses := []string{
		model.StatusCreated.String(),
		model.StatusInTransit.String(),
		model.StatusDelivered.String(),
	}
	// Дата заказа - в пределах последнего месяца, без времени суток.
	created := gofakeit.DateRange(time.Now().AddDate(0, -1, 0), time.Now())
	created = created.Truncate(24 * time.Hour)

	return model.Order{
		ClientID:       gofakeit.Number(1, 100000),
		ShopID:         shopID,
		Summ:           int64(gofakeit.Number(100, 5000000)),
		Status:         model.OrderStatus(gofakeit.RandomString(statuses)),
		CreatedDate:    created,
		CreatedSeconds: gofakeit.Number(0, model.SecondsPerDay),
		CourierID:      courierID,
	}
}

// rating дает оценку с одним знаком после запятой в диапазоне [0,5].
func rating() float64 {
	return float64(gofakeit.Number(0, 50)) / 10
}
