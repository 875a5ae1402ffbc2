package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"surfsup/internal/modules/climate/types"
)

//go:embed sql/get-most-recent-date.sql
var getMostRecentDateSQL string

//go:embed sql/get-precipitation-since.sql
var getPrecipitationSinceSQL string

//go:embed sql/get-stations.sql
var getStationsSQL string

//go:embed sql/get-most-active-station.sql
var getMostActiveStationSQL string

//go:embed sql/get-temperatures-since.sql
var getTemperaturesSinceSQL string

//go:embed sql/get-temperature-stats.sql
var getTemperatureStatsSQL string

//go:embed sql/get-temperature-stats-range.sql
var getTemperatureStatsRangeSQL string

// ClimateRepository hands out sessions over the climate dataset. A session holds one
// connection for the duration of a request and must be closed on every path.
type ClimateRepository interface {
	Open(ctx context.Context) (Session, error)
}

// Session runs the fixed dataset queries on a single connection.
type Session interface {
	// GetMostRecentDate returns MAX(date) over all measurements; ok is false when
	// there are none.
	GetMostRecentDate(ctx context.Context) (date string, ok bool, err error)
	GetPrecipitationSince(ctx context.Context, after string) ([]types.DateValue, error)
	GetStations(ctx context.Context) ([]types.Station, error)
	// GetMostActiveStation returns the station with the most measurement rows,
	// lowest station code first on ties; ok is false when there are no measurements.
	GetMostActiveStation(ctx context.Context) (stationID string, ok bool, err error)
	GetTemperaturesSince(ctx context.Context, stationID string, after string) ([]types.DateValue, error)
	// GetTemperatureStats aggregates tobs over date >= start and, when end is not nil,
	// date <= end. Bounds are compared as text.
	GetTemperatureStats(ctx context.Context, start string, end *string) (types.TemperatureStats, error)
	Close() error
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) ClimateRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Open(ctx context.Context) (Session, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &sessionImpl{conn: conn}, nil
}

type sessionImpl struct {
	conn *sql.Conn
}

func (s *sessionImpl) Close() error {
	return s.conn.Close()
}

func (s *sessionImpl) GetMostRecentDate(ctx context.Context) (string, bool, error) {
	var date sql.NullString
	if err := s.conn.QueryRowContext(ctx, getMostRecentDateSQL).Scan(&date); err != nil {
		return "", false, fmt.Errorf("most recent date: %w", err)
	}
	return date.String, date.Valid, nil
}

func (s *sessionImpl) GetPrecipitationSince(ctx context.Context, after string) ([]types.DateValue, error) {
	rows, err := s.conn.QueryContext(ctx, getPrecipitationSinceSQL, after)
	if err != nil {
		return nil, fmt.Errorf("precipitation: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close precipitation rows", "error", err)
		}
	}()
	return scanDateValues(rows)
}

func (s *sessionImpl) GetStations(ctx context.Context) ([]types.Station, error) {
	rows, err := s.conn.QueryContext(ctx, getStationsSQL)
	if err != nil {
		return nil, fmt.Errorf("stations: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close stations rows", "error", err)
		}
	}()
	out := []types.Station{}
	for rows.Next() {
		var st types.Station
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *sessionImpl) GetMostActiveStation(ctx context.Context) (string, bool, error) {
	var station string
	err := s.conn.QueryRowContext(ctx, getMostActiveStationSQL).Scan(&station)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("most active station: %w", err)
	}
	return station, true, nil
}

func (s *sessionImpl) GetTemperaturesSince(ctx context.Context, stationID string, after string) ([]types.DateValue, error) {
	rows, err := s.conn.QueryContext(ctx, getTemperaturesSinceSQL, stationID, after)
	if err != nil {
		return nil, fmt.Errorf("temperatures for %q: %w", stationID, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close temperature rows", "error", err)
		}
	}()
	return scanDateValues(rows)
}

func (s *sessionImpl) GetTemperatureStats(ctx context.Context, start string, end *string) (types.TemperatureStats, error) {
	var row *sql.Row
	if end == nil {
		row = s.conn.QueryRowContext(ctx, getTemperatureStatsSQL, start)
	} else {
		row = s.conn.QueryRowContext(ctx, getTemperatureStatsRangeSQL, start, *end)
	}

	var tmin, tmax, tavg sql.NullFloat64
	if err := row.Scan(&tmin, &tmax, &tavg); err != nil {
		return types.TemperatureStats{}, fmt.Errorf("temperature stats: %w", err)
	}
	return types.TemperatureStats{
		TMin: nullFloat(tmin),
		TMax: nullFloat(tmax),
		TAvg: nullFloat(tavg),
	}, nil
}

func scanDateValues(rows *sql.Rows) ([]types.DateValue, error) {
	out := []types.DateValue{}
	for rows.Next() {
		var (
			rec   types.DateValue
			value sql.NullFloat64
		)
		if err := rows.Scan(&rec.Date, &value); err != nil {
			return nil, err
		}
		rec.Value = nullFloat(value)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
