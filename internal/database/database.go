package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pathakanu/myLists/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	pragmaJournalModeWAL = `PRAGMA journal_mode=WAL`
	pragmaForeignKeysOn  = `PRAGMA foreign_keys=ON`
	pragmaBusyTimeout    = `PRAGMA busy_timeout=5000`
)

// New creates a GORM database connection and makes sure the schema exists.
// When databaseURL is provided PostgreSQL is used, otherwise SQLite at sqlitePath.
// Calling New repeatedly against the same database never drops or resets rows.
func New(databaseURL, sqlitePath string, log *slog.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	if databaseURL != "" {
		db, err = gorm.Open(postgres.Open(databaseURL), gormConfig)
	} else {
		var dsn string
		if dsn, err = sqliteDSN(sqlitePath); err != nil {
			return nil, unavailable("open sqlite", err)
		}
		db, err = gorm.Open(sqlite.Open(dsn), gormConfig)
		if err == nil && isMemoryPath(sqlitePath) {
			err = pinSingleConnection(db)
		}
	}
	if err != nil {
		return nil, unavailable("open database", err)
	}

	if err := configure(db); err != nil {
		_ = Close(db)
		return nil, unavailable("configure database", err)
	}

	if err := db.AutoMigrate(&model.List{}, &model.Item{}); err != nil {
		_ = Close(db)
		return nil, unavailable("migrate schema", err)
	}

	logBackend(db, sqlitePath, log)
	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// isMemoryPath reports whether path names an in-memory SQLite database.
func isMemoryPath(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:") || strings.Contains(path, "mode=memory")
}

// pinSingleConnection keeps an in-memory database on one connection; every
// new connection would otherwise open its own empty database.
func pinSingleConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)
	return nil
}

func sqliteDSN(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty database path")
	}
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return "", fmt.Errorf("create parent dir: %w", err)
		}
	}
	if strings.Contains(path, "?") {
		return path + "&_fk=1&_busy_timeout=5000", nil
	}
	return "file:" + strings.TrimPrefix(path, "file:") + "?_fk=1&_busy_timeout=5000&_journal_mode=WAL", nil
}

func configure(db *gorm.DB) error {
	if db.Dialector.Name() != "sqlite" {
		return nil
	}
	for _, stmt := range []string{pragmaJournalModeWAL, pragmaForeignKeysOn, pragmaBusyTimeout} {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("configure sqlite %q: %w", stmt, err)
		}
	}
	return nil
}

func logBackend(db *gorm.DB, sqlitePath string, log *slog.Logger) {
	if log == nil {
		return
	}
	dialector := db.Dialector.Name()
	switch strings.ToLower(dialector) {
	case "postgres":
		log.Info("database: connected to PostgreSQL")
	case "sqlite":
		log.Info("database: using SQLite", "path", sqlitePath)
	default:
		log.Info("database: connected", "dialector", dialector)
	}
}
