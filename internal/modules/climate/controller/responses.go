package controller

import "surfsup/internal/modules/climate/types"

// The API answers with one single-key object per row, so rows sharing a date stay
// separate entries.

func dateValueEntries(rows []types.DateValue) []map[string]*float64 {
	out := make([]map[string]*float64, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]*float64{row.Date: row.Value})
	}
	return out
}

func stationEntries(stations []types.Station) []map[string]string {
	out := make([]map[string]string, 0, len(stations))
	for _, s := range stations {
		out = append(out, map[string]string{s.ID: s.Name})
	}
	return out
}

// statsEntries wraps the aggregate in a one-element array; null aggregates are kept.
func statsEntries(stats types.TemperatureStats) []types.TemperatureStats {
	return []types.TemperatureStats{stats}
}
