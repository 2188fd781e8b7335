package main

import (
	"chedoparti/internal/courts/handler"
	"chedoparti/internal/courts/repository"
	"chedoparti/internal/courts/service"
	"chedoparti/internal/courts/validator"
	"chedoparti/pkg/app"
	"chedoparti/pkg/config"
)

const ServiceName = "courts"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Courts service")
	courtService := initServices(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewCourtHandler(courtService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.CourtService {
	courtValidator := validator.NewCourtValidator(cfg.Log)
	courtRepo := repository.NewMongoCourtRepository(cfg)
	courtService := service.NewCourtService(
		courtRepo,
		courtValidator,
		cfg,
	)

	cfg.Log.Info("Court service initialized", "database", cfg.MongoDatabaseName)
	return courtService
}
