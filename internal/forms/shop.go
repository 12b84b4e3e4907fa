package forms

import (
	"context"
	"fmt"

	"shopdesk/internal/model"
)

// ExistsProbe - предзаписная проверка наличия строки-цели внешнего ключа.
// Репозитории с методом Exists удовлетворяют интерфейсу напрямую.
// Проверка носит рекомендательный характер: гонка между проверкой и
// записью возможна, последнее слово за ограничениями движка БД.
type ExistsProbe interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// ShopInput - поля формы магазина в сыром виде.
type ShopInput struct {
	ID        string `json:"id"`
	Rating    string `json:"rating"`
	ProductID string `json:"product_id"`
}

// Parse разбирает и проверяет поля формы, возвращая готовую запись.
// Порядок проверок: разбор чисел, диапазоны, затем наличие товара.
func (in ShopInput) Parse(ctx context.Context, products ExistsProbe) (model.Shop, error) {
	const entity = "shop"

	id, verr := parseInt(entity, "id", in.ID)
	if verr != nil {
		return model.Shop{}, verr
	}
	rating, verr := parseFloat(entity, "rating", in.Rating)
	if verr != nil {
		return model.Shop{}, verr
	}
	productID, verr := parseInt(entity, "product_id", in.ProductID)
	if verr != nil {
		return model.Shop{}, verr
	}

	shop := model.Shop{ID: id, Rating: rating, ProductID: productID}
	if verr := checkRanges(entity, shop); verr != nil {
		return model.Shop{}, verr
	}

	exists, err := products.Exists(ctx, productID)
	if err != nil {
		return model.Shop{}, err
	}
	if !exists {
		return model.Shop{}, newValidationError(entity, "product_id",
			fmt.Sprintf("товар с id %d не найден", productID))
	}
	return shop, nil
}
