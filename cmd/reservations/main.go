package main

import (
	"context"
	"os"

	"chedoparti/internal/reservations/handler"
	"chedoparti/internal/reservations/repository"
	"chedoparti/internal/reservations/service"
	"chedoparti/internal/reservations/validator"
	"chedoparti/pkg/app"
	"chedoparti/pkg/client"
	"chedoparti/pkg/config"
	"chedoparti/pkg/kafka"
	kafka_config "chedoparti/pkg/kafka/config"
	kafka_middleware "chedoparti/pkg/kafka/middleware"
	"chedoparti/pkg/model"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Reservations service")
	reservationService := initServices(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewReservationHandler(reservationService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ReservationService {
	reservationValidator := validator.NewReservationValidator(cfg.Log)
	reservationRepo := repository.NewMongoReservationRepository(cfg)
	lockRepo := repository.NewSlotLockRepository(cfg)

	reservationService := service.NewReservationService(
		reservationRepo,
		lockRepo,
		reservationValidator,
		cfg,
		newCourtGetter(cfg),
		newEventPublisher(cfg),
	)

	cfg.Log.Info("Reservation service initialized", "database", cfg.MongoDatabaseName)
	return reservationService
}

// courtAPI adapts the courts HTTP client to the lookup the quote flow needs.
type courtAPI struct {
	client *client.CourtClient
}

func (c *courtAPI) GetCourt(_ context.Context, id string) (*model.Court, error) {
	resp, err := c.client.GetByID(id)
	if err != nil {
		return nil, err
	}
	return c.client.DecodeCourt(resp)
}

func newCourtGetter(cfg *config.Config) service.CourtGetter {
	baseURL := os.Getenv("COURTS_API_URL")
	if baseURL == "" {
		cfg.Log.Warn("COURTS_API_URL not set, quotes fall back to sport rates")
		return nil
	}
	return &courtAPI{client: client.NewCourtClient(baseURL)}
}

func newEventPublisher(cfg *config.Config) service.EventPublisher {
	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, kafka.TopicReservations, kafka.TopicReservationsDLQ)
	if err != nil {
		cfg.Log.Error("Kafka producer unavailable, reservation events disabled", "error", err)
		return nil
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware())
	producer.Use(kafka_middleware.MetricsProducerMiddleware())
	return producer
}
