package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"shopdesk/internal/api"
	"shopdesk/internal/config"
	"shopdesk/internal/database"
	"shopdesk/internal/metrics"
	"shopdesk/internal/state"
	"shopdesk/internal/tracing"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	metrics.Init()
	shutdownTracing := tracing.InitTracerProvider("shopdesk", cfg.Jaeger.URL)
	defer shutdownTracing()

	// Инициализация хранилища
	storage, err := database.New(cfg.Postgres.URL, cfg.Postgres.MigrationsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Ошибка инициализации хранилища")
	}
	defer storage.Close()

	coordinator := state.New(storage)

	// Стартовая проверка: пробное чтение таблицы магазинов.
	// При ошибке процесс прерывается - это единственный фатальный путь.
	if err := coordinator.HealthCheck(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Стартовая проверка хранилища не пройдена")
	}

	// Начальная загрузка всех коллекций; неудачи отдельных сущностей
	// не фатальны и отражаются в статусах коллекций.
	coordinator.LoadAll(context.Background())

	// Запуск HTTP-сервера
	server := api.NewServer(cfg.HTTP.Port, coordinator, storage)
	go func() {
		if err := server.Run(); err != nil {
			log.Fatal().Err(err).Msg("Ошибка запуска HTTP-сервера")
		}
	}()

	// Ожидание сигнала для корректного завершения работы
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	log.Info().Msg("Сервис останавливается...")
	log.Info().Msg("Сервис успешно остановлен.")
}
