package controller

import (
	"context"
	"net/http"

	"surfsup/internal/modules/climate/types"
)

const apiPrefix = "/api/v1.0"

// ClimateService is the query surface the handlers need.
type ClimateService interface {
	Precipitation(ctx context.Context) ([]types.DateValue, error)
	Stations(ctx context.Context) ([]types.Station, error)
	TemperatureObservations(ctx context.Context) ([]types.DateValue, error)
	TemperatureStats(ctx context.Context, start string, end *string) (types.TemperatureStats, error)
}

type ClimateController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type climateControllerImpl struct {
	service ClimateService
}

func NewClimateController(service ClimateService) ClimateController {
	return &climateControllerImpl{service: service}
}

// Routes lists the API paths shown on the index page, in display order.
var Routes = []string{
	apiPrefix + "/precipitation",
	apiPrefix + "/stations",
	apiPrefix + "/tobs",
	apiPrefix + "/<start>",
	apiPrefix + "/<start>/<end>",
}

func (c *climateControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.handleIndex)
	mux.HandleFunc("GET "+apiPrefix+"/precipitation", c.handlePrecipitation)
	mux.HandleFunc("GET "+apiPrefix+"/stations", c.handleStations)
	mux.HandleFunc("GET "+apiPrefix+"/tobs", c.handleTemperatureObservations)
	mux.HandleFunc("GET "+apiPrefix+"/{start}", c.handleTemperatureStats)
	mux.HandleFunc("GET "+apiPrefix+"/{start}/{end}", c.handleTemperatureStats)
}
