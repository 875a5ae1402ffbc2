package climate

import (
	"database/sql"
	"log/slog"
	"net/http"

	"surfsup/internal/modules/climate/controller"
	"surfsup/internal/modules/climate/repository"
	"surfsup/internal/modules/climate/service"
)

func RegisterFeature(mux *http.ServeMux, db *sql.DB, logger *slog.Logger) {
	climateRepository := repository.NewRepository(db)
	climateService := service.NewService(climateRepository, logger)
	climateController := controller.NewClimateController(climateService)
	climateController.RegisterRoutes(mux)
}
