package forms

import (
	"context"
	"fmt"
	"time"

	"shopdesk/internal/model"
)

// OrderInput - поля формы заказа в сыром виде.
// Ключ назначается хранилищем, поэтому в форме его нет.
type OrderInput struct {
	ClientID       string `json:"client_id"`
	ShopID         string `json:"shop_id"`
	Summ           string `json:"summ"`
	Status         string `json:"status"`
	CreatedDate    string `json:"created_date"`
	CreatedSeconds string `json:"created_seconds"`
	CourierID      string `json:"courier_id"`
}

// Parse разбирает и проверяет поля формы, возвращая готовую запись.
// Порядок проверок: разбор чисел, диапазоны, наличие магазина и
// курьера, затем статус и дата. Границы 0 и 86400 для времени суток
// допустимы обе.
func (in OrderInput) Parse(ctx context.Context, shops, couriers ExistsProbe) (model.Order, error) {
	const entity = "order"

	clientID, verr := parseInt(entity, "client_id", in.ClientID)
	if verr != nil {
		return model.Order{}, verr
	}
	shopID, verr := parseInt(entity, "shop_id", in.ShopID)
	if verr != nil {
		return model.Order{}, verr
	}
	summ, verr := parseInt64(entity, "summ", in.Summ)
	if verr != nil {
		return model.Order{}, verr
	}
	seconds, verr := parseInt(entity, "created_seconds", in.CreatedSeconds)
	if verr != nil {
		return model.Order{}, verr
	}
	courierID, verr := parseInt(entity, "courier_id", in.CourierID)
	if verr != nil {
		return model.Order{}, verr
	}

	order := model.Order{
		ClientID:       clientID,
		ShopID:         shopID,
		Summ:           summ,
		CreatedSeconds: seconds,
		CourierID:      courierID,
	}
	if verr := checkRanges(entity, order); verr != nil {
		return model.Order{}, verr
	}

	exists, err := shops.Exists(ctx, shopID)
	if err != nil {
		return model.Order{}, err
	}
	if !exists {
		return model.Order{}, newValidationError(entity, "shop_id",
			fmt.Sprintf("магазин с id %d не найден", shopID))
	}

	exists, err = couriers.Exists(ctx, courierID)
	if err != nil {
		return model.Order{}, err
	}
	if !exists {
		return model.Order{}, newValidationError(entity, "courier_id",
			fmt.Sprintf("курьер с id %d не найден", courierID))
	}

	status, err := model.ParseOrderStatus(in.Status)
	if err != nil {
		return model.Order{}, newValidationError(entity, "status",
			"статус должен быть одним из: Created, InTransit, Delivered")
	}
	order.Status = status

	createdDate, err := time.Parse(model.DateLayout, in.CreatedDate)
	if err != nil {
		return model.Order{}, newValidationError(entity, "created_date",
			fmt.Sprintf("дата должна быть в формате %s", model.DateLayout))
	}
	order.CreatedDate = createdDate

	return order, nil
}
