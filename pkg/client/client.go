package client

import (
	"context"
	"time"

	"chedoparti/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Client struct {
	Mongo *mongo.Client

	Reservations *ReservationClient
	Courts       *CourtClient
	OpenMatches  *OpenMatchClient
}

func NewClient() *Client {
	return &Client{}
}

// SetServices wires the HTTP clients for the downstream booking services.
// Empty URLs leave the corresponding client nil.
func (c *Client) SetServices(reservationsURL, courtsURL, openMatchesURL string) {
	if reservationsURL != "" {
		c.Reservations = NewReservationClient(reservationsURL)
	}
	if courtsURL != "" {
		c.Courts = NewCourtClient(courtsURL)
	}
	if openMatchesURL != "" {
		c.OpenMatches = NewOpenMatchClient(openMatchesURL)
	}
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, mongoConnTimeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB",
			"error", err,
			"uri", mongoURI,
		)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB", "error", err)
	}

	log.Info("Successfully connected to MongoDB")
	c.Mongo = client
}

func (c *Client) GracefulShutdown() {
	if c.Mongo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = c.Mongo.Disconnect(ctx)
}
