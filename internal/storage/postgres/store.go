package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/julianstephens/dayrail/internal/constants"
	"github.com/julianstephens/dayrail/internal/migration"
	"github.com/julianstephens/dayrail/internal/storage"
	"github.com/julianstephens/dayrail/migrations"
)

// Store keeps the ledger in a PostgreSQL schema named after the app.
type Store struct {
	connStr string
	db      *sql.DB
}

func New(connStr string) *Store {
	return &Store{connStr: withSearchPath(connStr)}
}

func (s *Store) connect() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("postgres: open: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasParam(s.connStr, "sslmode") {
			return fmt.Errorf("postgres: connect: %w (hint: add sslmode=disable)", err)
		}
		return fmt.Errorf("postgres: connect: %w", err)
	}
	s.db = db
	return nil
}

// Init creates the schema, migrates it, and seeds the day type.
func (s *Store) Init() error {
	if err := s.connect(); err != nil {
		return err
	}
	// search_path only resolves once the schema exists
	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		return fmt.Errorf("postgres: create schema: %w", err)
	}
	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}

	_, err := s.GetConfig(constants.SettingDayType)
	if errors.Is(err, storage.ErrConfigNotFound) {
		return s.SetConfig(constants.SettingDayType, constants.DefaultDayType)
	}
	return err
}

func (s *Store) Load() error {
	if err := s.connect(); err != nil {
		return err
	}
	return s.validateSchemaVersion()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("postgres: migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DialectPostgres), nil
}

func (s *Store) runMigrations() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.Apply()
	return err
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.Check()
}

// GetConfigPath names the server and database, never credentials.
func (s *Store) GetConfigPath() string {
	return describe(s.connStr)
}

// SchemaStatus reports the applied schema version and the number of pending migrations
func (s *Store) SchemaStatus() (int, int, error) {
	if s.db == nil {
		return 0, 0, storage.ErrNotInitialized
	}
	runner, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	st, err := runner.Status()
	if err != nil {
		return 0, 0, err
	}
	return st.Current, st.Pending, nil
}
