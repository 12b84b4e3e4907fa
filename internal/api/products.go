package api

import (
	"encoding/json"
	"net/http"

	"shopdesk/internal/forms"
	"shopdesk/internal/metrics"
	"shopdesk/internal/state"

	"github.com/prometheus/client_golang/prometheus"
)

// ProductHandler обрабатывает HTTP-запросы по товарам.
type ProductHandler struct {
	coordinator *state.Coordinator
}

// NewProductHandler создает новый экземпляр ProductHandler.
func NewProductHandler(coordinator *state.Coordinator) *ProductHandler {
	return &ProductHandler{coordinator: coordinator}
}

// List отдает коллекцию товаров из контейнера состояния.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	handlerName := "Products.List"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	products, status := h.coordinator.Products()
	if status == state.StatusLoadFailed {
		respondWithError(w, http.StatusServiceUnavailable, "коллекция товаров не загружена", handlerName)
		return
	}
	respondWithJSON(w, http.StatusOK, products, handlerName)
}

// Add проверяет форму товара и вставляет запись.
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	handlerName := "Products.Add"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	var input forms.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "некорректное тело запроса", handlerName)
		return
	}

	product, err := input.Parse()
	if err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}

	if err := h.coordinator.AddProduct(r.Context(), product); err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}
	respondWithJSON(w, http.StatusCreated, product, handlerName)
}

// Update проверяет форму товара и заменяет строку по ключу из URL.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	handlerName := "Products.Update"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id должен быть целым числом", handlerName)
		return
	}

	var input forms.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "некорректное тело запроса", handlerName)
		return
	}

	product, err := input.Parse()
	if err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}
	// Ключ берется из URL, поле формы не может его сменить.
	product.ID = id

	if err := h.coordinator.UpdateProduct(r.Context(), product); err != nil {
		respondMutationError(w, err, handlerName, "")
		return
	}
	respondWithJSON(w, http.StatusOK, product, handlerName)
}

// Delete удаляет товар по ключу из URL.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	handlerName := "Products.Delete"
	timer := prometheus.NewTimer(metrics.HttpRequestDuration.WithLabelValues(handlerName))
	defer timer.ObserveDuration()

	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id должен быть целым числом", handlerName)
		return
	}

	if err := h.coordinator.DeleteProduct(r.Context(), id); err != nil {
		respondMutationError(w, err, handlerName, "товар используется магазинами")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{"deleted": id}, handlerName)
}
