package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Сентинельные ошибки слоя хранилища. Обработчики на границе
// сопоставляют их через errors.Is и преобразуют в сообщение пользователю.
var (
	// ErrStorageUnavailable - соединение или запрос не удались.
	ErrStorageUnavailable = errors.New("хранилище недоступно")
	// ErrConstraintViolation - нарушение уникальности или внешнего ключа при записи.
	ErrConstraintViolation = errors.New("нарушение ограничения целостности")
	// ErrReferentialIntegrity - удаление заблокировано зависимыми строками.
	ErrReferentialIntegrity = errors.New("строка используется другими записями")
	// ErrNotFound - обновление не затронуло ни одной строки.
	ErrNotFound = errors.New("строка не найдена")
)

// Коды ошибок PostgreSQL (класс 23 - integrity constraint violation).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// classifyWriteError сводит ошибку вставки/обновления к таксономии слоя.
// Ограничения движка БД остаются второй линией обороны после
// предварительных Exists-проверок.
func classifyWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation:
			return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

// classifyDeleteError сводит ошибку удаления к таксономии слоя.
// Нарушение внешнего ключа при удалении означает наличие зависимых строк.
func classifyDeleteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) == pgForeignKeyViolation {
			return fmt.Errorf("%w: %v", ErrReferentialIntegrity, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

// classifyReadError сводит ошибку выборки к таксономии слоя.
// sql.ErrNoRows здесь не особый случай: GetAll возвращает пустой срез,
// а Exists - false, поэтому до классификации он не доходит.
func classifyReadError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
