package forms

import (
	"shopdesk/internal/model"
)

// CourierInput - поля формы курьера в сыром виде.
// Ключ назначается хранилищем, поэтому в форме его нет.
type CourierInput struct {
	Rating string `json:"rating"`
}

// Parse разбирает и проверяет поля формы, возвращая готовую запись.
func (in CourierInput) Parse() (model.Courier, error) {
	const entity = "courier"

	rating, verr := parseFloat(entity, "rating", in.Rating)
	if verr != nil {
		return model.Courier{}, verr
	}

	courier := model.Courier{Rating: rating}
	if verr := checkRanges(entity, courier); verr != nil {
		return model.Courier{}, verr
	}
	return courier, nil
}
