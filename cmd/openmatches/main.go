package main

import (
	"chedoparti/internal/openmatches/handler"
	"chedoparti/internal/openmatches/repository"
	"chedoparti/internal/openmatches/service"
	"chedoparti/internal/openmatches/validator"
	"chedoparti/pkg/app"
	"chedoparti/pkg/config"
	"chedoparti/pkg/kafka"
	kafka_config "chedoparti/pkg/kafka/config"
	kafka_middleware "chedoparti/pkg/kafka/middleware"
	"chedoparti/pkg/sealer"
)

const ServiceName = "open-matches"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Open Matches service")
	matchService := initServices(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewOpenMatchHandler(matchService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.OpenMatchService {
	slotSealer, err := sealer.New(cfg.SealerKey)
	if err != nil {
		cfg.Log.Fatal("Invalid sealer key", "error", err)
	}

	matchValidator := validator.NewOpenMatchValidator(cfg.Log)
	matchRepo := repository.NewMongoOpenMatchRepository(cfg)
	matchService := service.NewOpenMatchService(
		matchRepo,
		matchValidator,
		cfg,
		slotSealer,
		newEventPublisher(cfg),
	)

	cfg.Log.Info("Open match service initialized", "database", cfg.MongoDatabaseName)
	return matchService
}

func newEventPublisher(cfg *config.Config) service.EventPublisher {
	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, kafka.TopicOpenMatches, kafka.TopicOpenMatchesDLQ)
	if err != nil {
		cfg.Log.Error("Kafka producer unavailable, match events disabled", "error", err)
		return nil
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware())
	producer.Use(kafka_middleware.MetricsProducerMiddleware())
	return producer
}
