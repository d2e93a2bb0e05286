package postgres

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/dayrail/internal/storage"
)

func (s *Store) GetConfig(key string) (string, error) {
	if s.db == nil {
		return "", storage.ErrNotInitialized
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = $1", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrConfigNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *Store) SetConfig(key, value string) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, value)
	return err
}
