package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"surfsup/internal/config"
	db "surfsup/internal/db"
	httpapi "surfsup/internal/httpapi"
	climate "surfsup/internal/modules/climate"
	climateviews "surfsup/internal/modules/climate/views"
)

func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"dbDriver", cfg.Driver,
		"dbDSNSet", cfg.DSN != "",
		"sqlitePath", cfg.Path,
		"dbMaxOpenConns", cfg.MaxOpenConns,
		"dbMaxIdleConns", cfg.MaxIdleConns,
		"dbConnMaxLifetime", cfg.ConnMaxLifetime,
		"dbLogSQL", cfg.LogSQL,
	)
	dbConn, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := db.Close(dbConn)
		if closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()

	var ok int
	err = dbConn.QueryRowContext(ctx, `SELECT 1`).Scan(&ok)
	if err != nil {
		return err
	}
	if ok != 1 {
		return errors.New("database connection failed")
	}
	slog.Info("database connection successful")

	if err := climateviews.LoadTemplates(); err != nil {
		return err
	}
	mux := httpapi.NewMux(dbConn)
	climate.RegisterFeature(mux, dbConn, slog.Default())

	srv := httpapi.NewServer(cfg, mux)
	return serve(ctx, srv)
}

// serve runs srv until ctx is cancelled or the listener fails, then drains
// in-flight requests for up to 10 seconds.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err := <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
