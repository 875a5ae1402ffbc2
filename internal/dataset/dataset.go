// Package dataset builds the SQLite climate dataset the API serves: it creates the
// station and measurement tables and imports rows from the SurfsUp CSV exports.
// The HTTP service never calls it; it backs cmd/loader and test fixtures.
package dataset

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"surfsup/internal/modules/climate/types"
)

//go:embed sql/schema.sql
var schemaSQL string

const (
	insertStationSQL     = `INSERT INTO station (station, name, latitude, longitude, elevation) VALUES (?, ?, ?, ?, ?)`
	insertMeasurementSQL = `INSERT INTO measurement (station, date, prcp, tobs) VALUES (?, ?, ?, ?)`
)

var (
	stationHeader     = []string{"station", "name", "latitude", "longitude", "elevation"}
	measurementHeader = []string{"station", "date", "prcp", "tobs"}
)

// ErrHeader is returned when a CSV file does not start with the expected columns.
var ErrHeader = errors.New("unexpected csv header")

// EnsureSchema creates the station and measurement tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Load creates the schema and imports both CSV files in a single transaction.
func Load(ctx context.Context, db *sql.DB, stationsCSV, measurementsCSV io.Reader) error {
	stations, err := ReadStations(stationsCSV)
	if err != nil {
		return fmt.Errorf("read stations: %w", err)
	}
	measurements, err := ReadMeasurements(measurementsCSV)
	if err != nil {
		return fmt.Errorf("read measurements: %w", err)
	}
	return Insert(ctx, db, stations, measurements)
}

// Insert creates the schema and writes the given rows in a single transaction.
func Insert(ctx context.Context, db *sql.DB, stations []types.Station, measurements []types.Measurement) error {
	if err := EnsureSchema(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("dataset rollback", "error", err)
		}
	}()

	for _, s := range stations {
		if _, err := tx.ExecContext(ctx, insertStationSQL, s.ID, s.Name, nullable(s.Latitude), nullable(s.Longitude), nullable(s.Elevation)); err != nil {
			return fmt.Errorf("insert station %q: %w", s.ID, err)
		}
	}
	for _, m := range measurements {
		if _, err := tx.ExecContext(ctx, insertMeasurementSQL, m.StationID, m.Date, nullable(m.Precipitation), nullable(m.Temperature)); err != nil {
			return fmt.Errorf("insert measurement %s/%s: %w", m.StationID, m.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	slog.Info("dataset loaded", "stations", len(stations), "measurements", len(measurements))
	return nil
}

// ReadStations parses a station CSV export (station,name,latitude,longitude,elevation).
func ReadStations(r io.Reader) ([]types.Station, error) {
	records, err := readCSV(r, stationHeader)
	if err != nil {
		return nil, err
	}
	out := make([]types.Station, 0, len(records))
	for i, rec := range records {
		s := types.Station{ID: strings.TrimSpace(rec[0]), Name: strings.TrimSpace(rec[1])}
		if s.ID == "" {
			return nil, fmt.Errorf("line %d: empty station", i+2)
		}
		if s.Latitude, err = parseOptionalFloat(rec[2]); err != nil {
			return nil, fmt.Errorf("line %d: latitude: %w", i+2, err)
		}
		if s.Longitude, err = parseOptionalFloat(rec[3]); err != nil {
			return nil, fmt.Errorf("line %d: longitude: %w", i+2, err)
		}
		if s.Elevation, err = parseOptionalFloat(rec[4]); err != nil {
			return nil, fmt.Errorf("line %d: elevation: %w", i+2, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// ReadMeasurements parses a measurement CSV export (station,date,prcp,tobs).
// Empty prcp or tobs cells become NULL.
func ReadMeasurements(r io.Reader) ([]types.Measurement, error) {
	records, err := readCSV(r, measurementHeader)
	if err != nil {
		return nil, err
	}
	out := make([]types.Measurement, 0, len(records))
	for i, rec := range records {
		m := types.Measurement{StationID: strings.TrimSpace(rec[0]), Date: strings.TrimSpace(rec[1])}
		if m.StationID == "" || m.Date == "" {
			return nil, fmt.Errorf("line %d: station and date are required", i+2)
		}
		if m.Precipitation, err = parseOptionalFloat(rec[2]); err != nil {
			return nil, fmt.Errorf("line %d: prcp: %w", i+2, err)
		}
		if m.Temperature, err = parseOptionalFloat(rec[3]); err != nil {
			return nil, fmt.Errorf("line %d: tobs: %w", i+2, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func readCSV(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	cr.TrimLeadingSpace = true

	got, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrHeader)
		}
		return nil, err
	}
	for i := range header {
		if !strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(got[i], "\ufeff")), header[i]) {
			return nil, fmt.Errorf("%w: got %v, want %v", ErrHeader, got, header)
		}
	}
	return cr.ReadAll()
}

func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func nullable(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
