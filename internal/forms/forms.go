// Package forms повторяет контракт диалогов редактирования: сырые
// строковые поля разбираются и проверяются в строгом порядке, запись
// собирается только после прохождения всех проверок. Отказ валидации
// никогда не доходит до хранилища.
package forms

import (
	"fmt"
	"strconv"

	"shopdesk/internal/metrics"
	"shopdesk/internal/validator"
)

// ValidationError - локальный отказ проверки формы.
// Обработчик на границе показывает его пользователю как есть.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(entity, field, message string) *ValidationError {
	metrics.ValidationFailures.WithLabelValues(entity).Inc()
	return &ValidationError{Field: field, Message: message}
}

// parseInt разбирает целое поле формы.
func parseInt(entity, field, raw string) (int, *ValidationError) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newValidationError(entity, field, "должно быть целым числом")
	}
	return v, nil
}

// parseInt64 разбирает целое 64-битное поле формы.
func parseInt64(entity, field, raw string) (int64, *ValidationError) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, newValidationError(entity, field, "должно быть целым числом")
	}
	return v, nil
}

// parseFloat разбирает десятичное поле формы.
func parseFloat(entity, field, raw string) (float64, *ValidationError) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, newValidationError(entity, field, "должно быть десятичным числом")
	}
	return v, nil
}

// checkRanges прогоняет собранную запись через теги validate
// и преобразует первое нарушение в сообщение по полю.
func checkRanges(entity string, record interface{}) *ValidationError {
	err := validator.ValidateStruct(record)
	if err == nil {
		return nil
	}
	field, tag, ok := validator.FirstViolation(err)
	if !ok {
		return newValidationError(entity, "", "некорректные данные")
	}
	switch tag {
	case "gt":
		return newValidationError(entity, field, "должно быть больше нуля")
	case "gte", "lte":
		return newValidationError(entity, field, "значение вне допустимого диапазона")
	}
	return newValidationError(entity, field, "некорректное значение")
}
