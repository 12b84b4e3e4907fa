package api

import (
	"encoding/json"
	"net/http"

	"shopdesk/internal/database"
	"shopdesk/internal/forms"
	"shopdesk/internal/metrics"
	"shopdesk/internal/state"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderHandler обрабатывает HTTP-запросы по заказам.
// Для проверки внешних ключей формы нужны репозитории магазинов и курьеров.
type OrderHandler struct {
	coordinator *state.Coordinator
	shops       database.ShopRepository
	couriers    database.CourierRepository
}

// NewOrderHandler создает новый экземпляр OrderHandler.
func NewOrderHandler(coordinator *state.Coordinator, shops database.ShopRepository, couriers database.CourierRepository) *OrderHandler {
	return &OrderHandler{coordinator: coordinator, shops: shops, couriers: couriers}
}

// List отдает коллекцию заказов из контейнера состояния.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	handlerName := "Orders.List"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	orders, status := h.coordinator.Orders()
	if status == state.StatusLoadFailed {
		respondWithError(w, http.StatusServiceUnavailable, "коллекция заказов не загружена", handlerName)
		return
	}
	respondWithJSON(w, http.StatusOK, orders, handlerName)
}

// Add проверяет форму заказа (включая наличие магазина и курьера)
// и вставляет запись. Ключ назначается хранилищем и возвращается в ответе.
func (h *OrderHandler) Add(w http.ResponseWriter, r *http.Request) {
	handlerName := "Orders.Add"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	var input forms.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "некорректное тело запроса", handlerName)
		return
	}

	order, err := input.Parse(r.Context(), h.shops, h.couriers)
	if err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}

	id, err := h.coordinator.AddOrder(r.Context(), order)
	if err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}
	order.ID = id
	respondWithJSON(w, http.StatusCreated, order, handlerName)
}

// Update проверяет форму заказа и заменяет строку по ключу из URL.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	handlerName := "Orders.Update"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id должен быть целым числом", handlerName)
		return
	}

	var input forms.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "некорректное тело запроса", handlerName)
		return
	}

	order, err := input.Parse(r.Context(), h.shops, h.couriers)
	if err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}
	order.ID = id

	if err := h.coordinator.UpdateOrder(r.Context(), order); err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}
	respondWithJSON(w, http.StatusOK, order, handlerName)
}

// Delete удаляет заказ по ключу из URL.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	handlerName := "Orders.Delete"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id должен быть целым числом", handlerName)
		return
	}

	if err := h.coordinator.DeleteOrder(r.Context(), id); err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{"deleted": id}, handlerName)
}
