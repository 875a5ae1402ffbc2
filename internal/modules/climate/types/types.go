package types

// Station is a row of the station table. Only the code and display name are served.
type Station struct {
	ID        string   `json:"station"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Elevation *float64 `json:"elevation,omitempty"`
}

// Measurement is one daily observation. Dates are ISO-8601 text (YYYY-MM-DD).
type Measurement struct {
	StationID     string   `json:"station"`
	Date          string   `json:"date"`
	Precipitation *float64 `json:"prcp"`
	Temperature   *float64 `json:"tobs"`
}

// DateValue is a single (date, value) row as returned by the window queries.
type DateValue struct {
	Date  string
	Value *float64
}

type TemperatureStats struct {
	TMin *float64 `json:"tmin"`
	TMax *float64 `json:"tmax"`
	TAvg *float64 `json:"tavg"`
}
