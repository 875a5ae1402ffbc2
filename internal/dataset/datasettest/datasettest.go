// Package datasettest builds throwaway climate datasets for tests.
package datasettest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"surfsup/internal/config"
	"surfsup/internal/dataset"
	"surfsup/internal/db"
	"surfsup/internal/modules/climate/types"
)

// Build writes stations and measurements to a fresh SQLite file under t.TempDir
// and returns its path.
func Build(t *testing.T, stations []types.Station, measurements []types.Measurement) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hawaii.sqlite")
	rw, err := dataset.OpenWritable(path)
	if err != nil {
		t.Fatalf("open dataset: %v", err)
	}
	defer func() {
		if err := rw.Close(); err != nil {
			t.Fatalf("close dataset: %v", err)
		}
	}()

	if err := dataset.Insert(context.Background(), rw, stations, measurements); err != nil {
		t.Fatalf("insert dataset: %v", err)
	}
	return path
}

// Open builds a dataset and opens it read-only the way the server does.
func Open(t *testing.T, stations []types.Station, measurements []types.Measurement) *sql.DB {
	t.Helper()

	path := Build(t, stations, measurements)
	conn, err := db.Open(config.Config{Driver: "sqlite3", Path: path, MaxOpenConns: 4})
	if err != nil {
		t.Fatalf("open read-only dataset: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(conn); err != nil {
			t.Errorf("close read-only dataset: %v", err)
		}
	})
	return conn
}

// F returns a pointer to v, for nullable measurement values.
func F(v float64) *float64 {
	return &v
}

// M is shorthand for a measurement row.
func M(station, date string, prcp, tobs *float64) types.Measurement {
	return types.Measurement{StationID: station, Date: date, Precipitation: prcp, Temperature: tobs}
}
