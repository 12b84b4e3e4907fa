package model

import (
	"fmt"
	"time"
)

// DateLayout - фиксированный формат календарной даты заказа.
const DateLayout = "2006-01-02"

// SecondsPerDay - верхняя граница поля CreatedSeconds (включительно).
const SecondsPerDay = 86400

// OrderStatus - закрытое перечисление статусов заказа.
// Свободные строки не допускаются: разбор выполняется через ParseOrderStatus.
type OrderStatus string

const (
	StatusCreated   OrderStatus = "Created"
	StatusInTransit OrderStatus = "InTransit"
	StatusDelivered OrderStatus = "Delivered"
)

func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus преобразует строку в статус заказа.
// Возвращает ошибку, если значение не входит в перечисление.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case StatusCreated, StatusInTransit, StatusDelivered:
		return OrderStatus(raw), nil
	}
	return "", fmt.Errorf("неизвестный статус заказа: %q", raw)
}

// Product - товар. Первичный ключ назначается пользователем.
type Product struct {
	ID    int     `json:"id" db:"id" validate:"gt=0"`
	Price float64 `json:"price" db:"price" validate:"gt=0"`
}

// Shop - магазин. Первичный ключ назначается пользователем,
// ProductID ссылается на существующий товар.
type Shop struct {
	ID        int     `json:"id" db:"id" validate:"gt=0"`
	Rating    float64 `json:"rating" db:"rating" validate:"gte=0,lte=5"`
	ProductID int     `json:"product_id" db:"product_id" validate:"gt=0"`
}

// Courier - курьер. Первичный ключ назначается хранилищем.
type Courier struct {
	ID     int     `json:"id" db:"id"`
	Rating float64 `json:"rating" db:"rating" validate:"gte=0,lte=5"`
}

// Order - заказ. Первичный ключ назначается хранилищем,
// ShopID и CourierID ссылаются на существующие строки.
// ClientID ссылочно не проверяется.
type Order struct {
	ID             int         `json:"id" db:"id"`
	ClientID       int         `json:"client_id" db:"client_id" validate:"gt=0"`
	ShopID         int         `json:"shop_id" db:"shop_id" validate:"gt=0"`
	Summ           int64       `json:"summ" db:"summ" validate:"gt=0"`
	Status         OrderStatus `json:"status" db:"status"`
	CreatedDate    time.Time   `json:"created_date" db:"created_date"`
	CreatedSeconds int         `json:"created_seconds" db:"created_seconds" validate:"gte=0,lte=86400"`
	CourierID      int         `json:"courier_id" db:"courier_id" validate:"gt=0"`
}
