package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"shopdesk/internal/database"
	"shopdesk/internal/forms"
	"shopdesk/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// respondWithJSON вспомогательная функция для отправки JSON-ответов.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, handlerName string) {
	metrics.HttpRequestsTotal.WithLabelValues(handlerName, strconv.Itoa(code)).Inc()
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError отправляет сообщение об ошибке в JSON-обертке.
func respondWithError(w http.ResponseWriter, code int, message string, handlerName string) {
	respondWithJSON(w, code, map[string]string{"error": message}, handlerName)
}

// respondMutationError преобразует ошибку слоя данных в ответ
// пользователю. Дальше этой границы ошибки не распространяются.
// refHint - подсказка с вероятной зависимой таблицей для отказов
// ссылочной целостности.
func respondMutationError(w http.ResponseWriter, err error, handlerName, refHint string) {
	var verr *forms.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithJSON(w, http.StatusBadRequest, map[string]string{
			"error": verr.Message,
			"field": verr.Field,
		}, handlerName)
	case errors.Is(err, database.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "строка не найдена", handlerName)
	case errors.Is(err, database.ErrReferentialIntegrity):
		respondWithError(w, http.StatusConflict, refHint, handlerName)
	case errors.Is(err, database.ErrConstraintViolation):
		respondWithError(w, http.StatusConflict, "проверьте введенные данные", handlerName)
	default:
		// StorageUnavailable и все прочее - дословно, как в диалоге ошибки.
		log.Error().Err(err).Str("handler", handlerName).Msg("Ошибка хранилища")
		respondWithError(w, http.StatusServiceUnavailable, err.Error(), handlerName)
	}
}

// idParam извлекает целочисленный первичный ключ из URL.
func idParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}
