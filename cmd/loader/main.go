package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"surfsup/internal/config"
	"surfsup/internal/dataset"
	"surfsup/internal/logging"
)

const appName = "surfsup-loader"

var version = "dev"

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <hawaii_stations.csv> <hawaii_measurements.csv>\n  writes the dataset to $SQLITE_PATH\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.New(cfg, version, appName))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, filepath.Clean(cfg.Path), os.Args[1], os.Args[2]); err != nil {
		slog.Error("load failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dbPath, stationsPath, measurementsPath string) error {
	stations, err := os.Open(stationsPath)
	if err != nil {
		return err
	}
	defer stations.Close()

	measurements, err := os.Open(measurementsPath)
	if err != nil {
		return err
	}
	defer measurements.Close()

	conn, err := dataset.OpenWritable(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Error("db close", "err", closeErr)
		}
	}()

	slog.Info("loading dataset", "path", dbPath, "stations", stationsPath, "measurements", measurementsPath)
	return dataset.Load(ctx, conn, stations, measurements)
}
