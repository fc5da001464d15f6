package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"gogemini-wallpapers/internal/logger"
)

//go:generate mockgen -source=keystore.go -destination=../mock/keystore_mock.go -package=mock

var ErrNotFound = errors.New("setting not found")

const (
	getSetting    = `SELECT value FROM settings WHERE key = ?;`
	upsertSetting = `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`
	deleteSetting = `DELETE FROM settings WHERE key = ?;`
)

// Store is a tiny persistent key-value map for user settings such as a
// manually entered API key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type SQLiteStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// Open creates the database file (and its directory) when missing, pings
// it and applies migrations. ":memory:" keeps everything in process.
func Open(ctx context.Context, dsn string, log *logger.Logger) (*SQLiteStore, error) {
	if dsn != ":memory:" {
		if err := createFileIfNotExists(dsn); err != nil {
			log.Err(err).Str("dsn", dsn).Msg("error creating database file")
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open key store: %w", err)
	}
	if dsn == ":memory:" {
		// every new connection would see an empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping key store: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	log.Debug().Str("dsn", dsn).Msg("key store ready")

	return New(db, log), nil
}

func New(db *sql.DB, log *logger.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, logger: log}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, getSetting, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, upsertSetting, key, value); err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	s.logger.Debug().Str("key", key).Msg("setting saved")
	return nil
}

// Delete is idempotent: removing a missing key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, deleteSetting, key); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	s.logger.Debug().Str("key", key).Msg("setting deleted")
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func createFileIfNotExists(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat key store file: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create key store dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create key store file: %w", err)
	}
	return f.Close()
}
