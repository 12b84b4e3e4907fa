package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassifyWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"уникальность", &pq.Error{Code: "23505"}, ErrConstraintViolation},
		{"внешний ключ", &pq.Error{Code: "23503"}, ErrConstraintViolation},
		{"check-ограничение", &pq.Error{Code: "23514"}, ErrConstraintViolation},
		{"обрыв соединения", errors.New("connection reset"), ErrStorageUnavailable},
		{"обернутая ошибка pq", fmt.Errorf("exec: %w", &pq.Error{Code: "23505"}), ErrConstraintViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyWriteError(tt.err), tt.want)
		})
	}
}

func TestClassifyDeleteError(t *testing.T) {
	// При удалении нарушение внешнего ключа означает зависимые строки.
	assert.ErrorIs(t, classifyDeleteError(&pq.Error{Code: "23503"}), ErrReferentialIntegrity)
	assert.ErrorIs(t, classifyDeleteError(errors.New("timeout")), ErrStorageUnavailable)
}
