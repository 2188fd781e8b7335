package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"chedoparti/pkg/kafka"
	kafka_config "chedoparti/pkg/kafka/config"
	kafka_middleware "chedoparti/pkg/kafka/middleware"
	"chedoparti/pkg/logger"
)

const groupID = "chedoparti-notifier"

func main() {
	log := logger.New(logger.Config{
		Level:   logger.INFO,
		Format:  logger.JSON,
		Service: "notifier",
	})

	kafkaCfg := kafka_config.Load()

	reservations, err := kafka.NewConsumer(kafkaCfg, kafka.TopicReservations, groupID, kafka.TopicReservationsDLQ, handleReservationEvent(log))
	if err != nil {
		log.Fatal("Failed to create reservations consumer", "error", err)
	}
	matches, err := kafka.NewConsumer(kafkaCfg, kafka.TopicOpenMatches, groupID, kafka.TopicOpenMatchesDLQ, handleOpenMatchEvent(log))
	if err != nil {
		log.Fatal("Failed to create open matches consumer", "error", err)
	}

	for _, c := range []*kafka.Consumer{reservations, matches} {
		c.Use(kafka_middleware.LoggingConsumerMiddleware())
		c.Use(kafka_middleware.MetricsConsumerMiddleware())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Notifier started", "brokers", kafkaCfg.Brokers, "group_id", groupID)

	var wg sync.WaitGroup
	for _, c := range []*kafka.Consumer{reservations, matches} {
		wg.Add(1)
		go func(c *kafka.Consumer) {
			defer wg.Done()
			if err := c.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error("Consumer stopped", "error", err)
			}
		}(c)
	}

	<-ctx.Done()
	log.Info("Shutting down notifier")

	if err := reservations.Close(); err != nil {
		log.Error("Failed to close reservations consumer", "error", err)
	}
	if err := matches.Close(); err != nil {
		log.Error("Failed to close open matches consumer", "error", err)
	}
	wg.Wait()

	log.Info("Notifier stopped")
	os.Exit(0)
}

// handleReservationEvent writes a notification line per reservation event.
// Delivery channels (mail, push) hang off this handler later.
func handleReservationEvent(log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event kafka.ReservationEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("undecodable reservation event", err)
		}

		switch msg.GetEventType() {
		case kafka.EventReservationCreated:
			log.Info("Reservation confirmed",
				"reservation_id", event.ReservationID,
				"owner_id", event.OwnerID,
				"court_id", event.CourtID,
				"date", event.Date,
				"start_time", event.StartTime,
				"price", event.Price,
			)
		case kafka.EventReservationUpdated:
			log.Info("Reservation changed",
				"reservation_id", event.ReservationID,
				"owner_id", event.OwnerID,
				"date", event.Date,
				"start_time", event.StartTime,
			)
		case kafka.EventReservationCancelled:
			log.Info("Reservation cancelled",
				"reservation_id", event.ReservationID,
				"owner_id", event.OwnerID,
				"cancelled_by", event.CancelledBy,
				"reason", event.CancelReason,
			)
		default:
			log.Warn("Unknown reservation event type", "event_type", msg.GetEventType())
		}
		return nil
	}
}

func handleOpenMatchEvent(log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event kafka.OpenMatchEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("undecodable open match event", err)
		}

		switch msg.GetEventType() {
		case kafka.EventOpenMatchCreated:
			log.Info("Open match published",
				"match_id", event.MatchID,
				"host_id", event.HostID,
				"court_id", event.CourtID,
				"date", event.Date,
				"start_time", event.StartTime,
				"spots_left", event.SpotsLeft,
			)
		case kafka.EventOpenMatchPlayerJoined:
			log.Info("Player joined match",
				"match_id", event.MatchID,
				"player_name", event.PlayerName,
				"spots_left", event.SpotsLeft,
			)
		case kafka.EventOpenMatchPlayerLeft:
			log.Info("Player left match",
				"match_id", event.MatchID,
				"player_name", event.PlayerName,
				"spots_left", event.SpotsLeft,
			)
		case kafka.EventOpenMatchFull:
			log.Info("Match is full",
				"match_id", event.MatchID,
				"host_id", event.HostID,
				"date", event.Date,
				"start_time", event.StartTime,
			)
		case kafka.EventOpenMatchCancelled:
			log.Info("Match cancelled",
				"match_id", event.MatchID,
				"host_id", event.HostID,
			)
		default:
			log.Warn("Unknown open match event type", "event_type", msg.GetEventType())
		}
		return nil
	}
}
