package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"surfsup/internal/modules/climate/repository"
	"surfsup/internal/modules/climate/types"
)

const (
	dateLayout = "2006-01-02"
	// windowDays is a fixed day count, not a calendar year.
	windowDays = 365
)

type Service struct {
	repository repository.ClimateRepository
	logger     *slog.Logger
}

func NewService(repository repository.ClimateRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repository: repository, logger: logger}
}

// Precipitation returns every (date, prcp) row in the last-year window, ascending by date.
func (s *Service) Precipitation(ctx context.Context) (out []types.DateValue, err error) {
	err = s.withSession(ctx, func(sess repository.Session) error {
		start, ok, err := windowStart(ctx, sess)
		if err != nil || !ok {
			out = []types.DateValue{}
			return err
		}
		out, err = sess.GetPrecipitationSince(ctx, start)
		return err
	})
	return out, err
}

func (s *Service) Stations(ctx context.Context) (out []types.Station, err error) {
	err = s.withSession(ctx, func(sess repository.Session) error {
		out, err = sess.GetStations(ctx)
		return err
	})
	return out, err
}

// TemperatureObservations returns the (date, tobs) rows in the last-year window for
// the station with the most measurements overall.
func (s *Service) TemperatureObservations(ctx context.Context) (out []types.DateValue, err error) {
	err = s.withSession(ctx, func(sess repository.Session) error {
		start, ok, err := windowStart(ctx, sess)
		if err != nil || !ok {
			out = []types.DateValue{}
			return err
		}
		station, ok, err := sess.GetMostActiveStation(ctx)
		if err != nil || !ok {
			out = []types.DateValue{}
			return err
		}
		s.logger.Debug("most active station", "station", station, "window_start", start)
		out, err = sess.GetTemperaturesSince(ctx, station, start)
		return err
	})
	return out, err
}

// TemperatureStats returns min, max and mean tobs for date >= start and, if end is
// not nil, date <= end. The bounds are not parsed; they are compared with the stored
// date text as is.
func (s *Service) TemperatureStats(ctx context.Context, start string, end *string) (out types.TemperatureStats, err error) {
	err = s.withSession(ctx, func(sess repository.Session) error {
		out, err = sess.GetTemperatureStats(ctx, start, end)
		return err
	})
	return out, err
}

// withSession acquires one connection for fn and releases it whatever fn returns.
func (s *Service) withSession(ctx context.Context, fn func(repository.Session) error) error {
	sess, err := s.repository.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			s.logger.Error("close session", "error", err)
		}
	}()
	return fn(sess)
}

// windowStart returns the most recent observation date minus 365 days. ok is false
// for a dataset without measurements.
func windowStart(ctx context.Context, sess repository.Session) (string, bool, error) {
	latest, ok, err := sess.GetMostRecentDate(ctx)
	if err != nil || !ok {
		return "", false, err
	}
	start, err := WindowStart(latest)
	if err != nil {
		return "", false, err
	}
	return start, true, nil
}

// WindowStart subtracts 365 days from an ISO-8601 date.
func WindowStart(mostRecent string) (string, error) {
	t, err := time.Parse(dateLayout, mostRecent)
	if err != nil {
		return "", fmt.Errorf("most recent date %q: %w", mostRecent, err)
	}
	return t.AddDate(0, 0, -windowDays).Format(dateLayout), nil
}
