package api

import (
	"fmt"
	"net/http"

	"shopdesk/internal/database"
	"shopdesk/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Server представляет HTTP-сервер.
type Server struct {
	port        string
	router      *chi.Mux
	coordinator *state.Coordinator
	storage     database.Storage
}

// NewServer создает и настраивает новый экземпляр сервера.
func NewServer(port string, coordinator *state.Coordinator, storage database.Storage) *Server {
	server := &Server{
		port:        port,
		coordinator: coordinator,
		storage:     storage,
	}
	server.router = server.setupRouter()
	return server
}

// Run запускает HTTP-сервер.
func (s *Server) Run() error {
	address := fmt.Sprintf(":%s", s.port)
	fmt.Printf("🚀 HTTP-сервер запущен на http://localhost%s\n", address)
	return http.ListenAndServe(address, otelhttp.NewHandler(s.router, "http-server"))
}

// setupRouter настраивает маршрутизацию.
func (s *Server) setupRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	productHandler := NewProductHandler(s.coordinator)
	shopHandler := NewShopHandler(s.coordinator, s.storage.Products())
	courierHandler := NewCourierHandler(s.coordinator)
	orderHandler := NewOrderHandler(s.coordinator, s.storage.Shops(), s.storage.Couriers())

	router.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Post("/", productHandler.Add)
			r.Put("/{id}", productHandler.Update)
			r.Delete("/{id}", productHandler.Delete)
		})
		r.Route("/shops", func(r chi.Router) {
			r.Get("/", shopHandler.List)
			r.Post("/", shopHandler.Add)
			r.Put("/{id}", shopHandler.Update)
			r.Delete("/{id}", shopHandler.Delete)
		})
		r.Route("/couriers", func(r chi.Router) {
			r.Get("/", courierHandler.List)
			r.Post("/", courierHandler.Add)
			r.Put("/{id}", courierHandler.Update)
			r.Delete("/{id}", courierHandler.Delete)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderHandler.List)
			r.Post("/", orderHandler.Add)
			r.Put("/{id}", orderHandler.Update)
			r.Delete("/{id}", orderHandler.Delete)
		})
	})

	// Метрики Prometheus
	router.Handle("/metrics", promhttp.Handler())

	return router
}
