package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"surfsup/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the climate dataset. The file must already exist: the service never
// creates or writes it.
func Open(cfg config.Config) (*sql.DB, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	if cfg.LogSQL {
		connector, err := NewLoggingConnector(dsn, slog.Default())
		if err != nil {
			return nil, fmt.Errorf("db connector: %w", err)
		}
		db = sql.OpenDB(connector)
	} else {
		db, err = sql.Open(cfg.Driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns >= 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}

func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// readOnlyParams are appended to every file DSN.
// mode=ro also stops sqlite from creating a missing file.
var readOnlyParams = []string{
	"mode=ro",
	"_query_only=true",
	"_busy_timeout=5000",
}

func buildDSN(cfg config.Config) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}

	path := cfg.Path
	if path == "" {
		return "", fmt.Errorf("dataset path is empty")
	}

	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(readOnlyParams, "&"), nil
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("dataset %s: %w", path, err)
	}
	return fmt.Sprintf("file:%s?%s", path, strings.Join(readOnlyParams, "&")), nil
}
