package api

import (
	"encoding/json"
	"net/http"

	"shopdesk/internal/forms"
	"shopdesk/internal/metrics"
	"shopdesk/internal/state"

	"github.com/prometheus/client_golang/prometheus"
)

// CourierHandler обрабатывает HTTP-запросы по курьерам.
type CourierHandler struct {
	coordinator *state.Coordinator
}

// NewCourierHandler создает новый экземпляр CourierHandler.
func NewCourierHandler(coordinator *state.Coordinator) *CourierHandler {
	return &CourierHandler{coordinator: coordinator}
}

// List отдает коллекцию курьеров из контейнера состояния.
func (h *CourierHandler) List(w http.ResponseWriter, r *http.Request) {
	handlerName := "Couriers.List"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	couriers, status := h.coordinator.Couriers()
	if status == state.StatusLoadFailed {
		respondWithError(w, http.StatusServiceUnavailable, "коллекция курьеров не загружена", handlerName)
		return
	}
	respondWithJSON(w, http.StatusOK, couriers, handlerName)
}

// Add проверяет форму курьера и вставляет запись.
// Ключ назначается хранилищем и возвращается в ответе.
func (h *CourierHandler) Add(w http.ResponseWriter, r *http.Request) {
	handlerName := "Couriers.Add"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	var input forms.CourierInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "некорректное тело запроса", handlerName)
		return
	}

	courier, err := input.Parse()
	if err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}

	id, err := h.coordinator.AddCourier(r.Context(), courier)
	if err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}
	courier.ID = id
	respondWithJSON(w, http.StatusCreated, courier, handlerName)
}

// Update проверяет форму курьера и заменяет строку по ключу из URL.
func (h *CourierHandler) Update(w http.ResponseWriter, r *http.Request) {
	handlerName := "Couriers.Update"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id должен быть целым числом", handlerName)
		return
	}

	var input forms.CourierInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "некорректное тело запроса", handlerName)
		return
	}

	courier, err := input.Parse()
	if err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}
	courier.ID = id

	if err := h.coordinator.UpdateCourier(r.Context(), courier); err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}
	respondWithJSON(w, http.StatusOK, courier, handlerName)
}

// Delete удаляет курьера по ключу из URL.
func (h *CourierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	handlerName := "Couriers.Delete"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id должен быть целым числом", handlerName)
		return
	}

	if err := h.coordinator.DeleteCourier(r.Context(), id); err != nil {
		respondMutationError(w, err, handlerName, "курьер используется заказами")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{"deleted": id}, handlerName)
}
