package controller

import (
	"bytes"
	"log/slog"
	"net/http"

	"surfsup/internal/modules/climate/views"
	"surfsup/internal/utils"
)

func (c *climateControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := views.RenderIndex(&buf, &views.IndexData{Routes: Routes}); err != nil {
		slog.Error("index template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	utils.WriteHTML(w, http.StatusOK, buf.Bytes())
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	rows, err := c.service.Precipitation(r.Context())
	if err != nil {
		slog.Error("precipitation query failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, dateValueEntries(rows))
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	stations, err := c.service.Stations(r.Context())
	if err != nil {
		slog.Error("stations query failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, stationEntries(stations))
}

func (c *climateControllerImpl) handleTemperatureObservations(w http.ResponseWriter, r *http.Request) {
	rows, err := c.service.TemperatureObservations(r.Context())
	if err != nil {
		slog.Error("tobs query failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, dateValueEntries(rows))
}

// handleTemperatureStats serves both /{start} and /{start}/{end}. The path values are
// handed to the query untouched.
func (c *climateControllerImpl) handleTemperatureStats(w http.ResponseWriter, r *http.Request) {
	start := r.PathValue("start")
	endValue := r.PathValue("end")
	var end *string
	if endValue != "" {
		end = &endValue
	}

	stats, err := c.service.TemperatureStats(r.Context(), start, end)
	if err != nil {
		slog.Error("temperature stats query failed", "start", start, "end", endValue, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, statsEntries(stats))
}
