package forms

import (
	"shopdesk/internal/model"
)

// ProductInput - поля формы товара в сыром виде.
// Ключ назначается пользователем и вводится в форме.
type ProductInput struct {
	ID    string `json:"id"`
	Price string `json:"price"`
}

// Parse разбирает и проверяет поля формы, возвращая готовую запись.
// Порядок проверок: разбор чисел, затем диапазоны.
func (in ProductInput) Parse() (model.Product, error) {
	const entity = "product"

	id, verr := parseInt(entity, "id", in.ID)
	if verr != nil {
		return model.Product{}, verr
	}
	price, verr := parseFloat(entity, "price", in.Price)
	if verr != nil {
		return model.Product{}, verr
	}

	product := model.Product{ID: id, Price: price}
	if verr := checkRanges(entity, product); verr != nil {
		return model.Product{}, verr
	}
	return product, nil
}
