package api

import (
	"net/http"

	"chedoparti/internal/gateway/handlers"
	"chedoparti/internal/gateway/service"
	"chedoparti/pkg/client"
	"chedoparti/pkg/logger"
)

func SetupRouter(c *client.Client, log *logger.Logger) *http.ServeMux {
	gatewayService := service.NewGatewayService(c, log)
	flowHandler := handlers.NewFlowHandler(gatewayService, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/gateway/execute", flowHandler.ExecuteFlow)
	mux.HandleFunc("/api/v1/gateway/flows", flowHandler.ListFlows)
	mux.HandleFunc("/api/v1/gateway/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	return mux
}
