package main

import (
	"net/http"
	"os"

	"chedoparti/internal/gateway/api"
	"chedoparti/pkg/client"
	"chedoparti/pkg/logger"
)

func main() {
	log := logger.New(logger.Config{
		Level:   logger.INFO,
		Format:  logger.JSON,
		Service: "gateway",
	})

	reservationsURL := envOr("RESERVATIONS_API_URL", "http://localhost:8080")
	courtsURL := envOr("COURTS_API_URL", "http://localhost:8081")
	openMatchesURL := envOr("OPEN_MATCHES_API_URL", "http://localhost:8082")
	port := envOr("GATEWAY_PORT", "8090")

	apiClient := client.NewClient()
	apiClient.SetServices(reservationsURL, courtsURL, openMatchesURL)

	router := api.SetupRouter(apiClient, log)

	addr := ":" + port
	log.Info("Starting Gateway API server",
		"address", addr,
		"reservations_url", reservationsURL,
		"courts_url", courtsURL,
		"open_matches_url", openMatchesURL,
	)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
