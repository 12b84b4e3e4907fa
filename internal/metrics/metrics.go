package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var (
	// HttpRequestsTotal - Счетчик HTTP-запросов
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Количество HTTP запросов",
		},
		[]string{"handler", "status"}, // Метки: хэндлер и http-статус
	)

	// HttpRequestDuration - Гистограмма длительности HTTP-запросов
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Длительность HTTP запросов",
		},
		[]string{"handler"}, // Метки: хэндлер
	)

	// DBErrors - Счетчик ошибок базы данных
	DBErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Количество ошибок при работе с БД",
		},
		[]string{"operation"}, // Метки: "add_shop", "get_all_orders" и т.д.
	)

	// ValidationFailures - Счетчик отказов валидации до обращения к БД
	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_failures_total",
			Help: "Количество отказов валидации форм",
		},
		[]string{"entity"}, // Метки: "shop", "product", "courier", "order"
	)

	// StateReloads - Счетчик полных перезагрузок коллекций после мутаций
	StateReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "state_reloads_total",
			Help: "Количество перезагрузок коллекций из БД",
		},
		[]string{"entity"},
	)

	// StateRollbacks - Счетчик откатов записи в памяти после неудачного Update
	StateRollbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "state_rollbacks_total",
			Help: "Количество восстановлений записи из снимка",
		},
		[]string{"entity"},
	)
)

// Init используется для регистрации метрик.
// promauto регистрирует их автоматически при создании.
func Init() {
	log.Info().Msg("Prometheus метрики инициализированы.")
}
