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

// ShopHandler обрабатывает HTTP-запросы по магазинам.
// Для проверки внешнего ключа формы нужен репозиторий товаров.
type ShopHandler struct {
	coordinator *state.Coordinator
	products    database.ProductRepository
}

// NewShopHandler создает новый экземпляр ShopHandler.
func NewShopHandler(coordinator *state.Coordinator, products database.ProductRepository) *ShopHandler {
	return &ShopHandler{coordinator: coordinator, products: products}
}

// List отдает коллекцию магазинов из контейнера состояния.
func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	handlerName := "Shops.List"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	shops, status := h.coordinator.Shops()
	if status == state.StatusLoadFailed {
		respondWithError(w, http.StatusServiceUnavailable, "коллекция магазинов не загружена", handlerName)
		return
	}
	respondWithJSON(w, http.StatusOK, shops, handlerName)
}

// Add проверяет форму магазина (включая наличие товара) и вставляет запись.
func (h *ShopHandler) Add(w http.ResponseWriter, r *http.Request) {
	handlerName := "Shops.Add"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	var input forms.ShopInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "некорректное тело запроса", handlerName)
		return
	}

	shop, err := input.Parse(r.Context(), h.products)
	if err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}

	if err := h.coordinator.AddShop(r.Context(), shop); err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}
	respondWithJSON(w, http.StatusCreated, shop, handlerName)
}

// Update проверяет форму магазина и заменяет строку по ключу из URL.
func (h *ShopHandler) Update(w http.ResponseWriter, r *http.Request) {
	handlerName := "Shops.Update"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id должен быть целым числом", handlerName)
		return
	}

	var input forms.ShopInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "некорректное тело запроса", handlerName)
		return
	}

	shop, err := input.Parse(r.Context(), h.products)
	if err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}
	shop.ID = id

	if err := h.coordinator.UpdateShop(r.Context(), shop); err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}
	respondWithJSON(w, http.StatusOK, shop, handlerName)
}

// Delete удаляет магазин по ключу из URL.
func (h *ShopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	handlerName := "Shops.Delete"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id должен быть целым числом", handlerName)
		return
	}

	if err := h.coordinator.DeleteShop(r.Context(), id); err != nil {
		respondMutationError(w, err, handlerName, "магазин используется заказами")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{"deleted": id}, handlerName)
}
