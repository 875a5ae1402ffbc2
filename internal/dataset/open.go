package dataset

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// OpenWritable opens (creating if needed) the SQLite file at dbPath for loading.
func OpenWritable(dbPath string) (*sql.DB, error) {
	dsn := writableDSN(dbPath)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}

// writableDSN keeps the rollback journal so the finished file can be opened with mode=ro.
func writableDSN(dbPath string) string {
	params := []string{
		"_foreign_keys=on",
		"_busy_timeout=5000",
		"_journal_mode=DELETE",
	}

	if strings.HasPrefix(dbPath, "file:") {
		sep := "?"
		if strings.Contains(dbPath, "?") {
			sep = "&"
		}
		return dbPath + sep + strings.Join(params, "&")
	}

	return fmt.Sprintf("file:%s?%s", dbPath, strings.Join(params, "&"))
}
