package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/dayrail/internal/constants"
	"github.com/julianstephens/dayrail/internal/migration"
	"github.com/julianstephens/dayrail/internal/storage"
	"github.com/julianstephens/dayrail/migrations"
)

// busyTimeout is in milliseconds; the TUI and a CLI run may hold the file together.
const busyTimeout = 5000

// Store is the default ledger: a single sqlite file under the config dir.
type Store struct {
	path string
	db   *sql.DB
}

func New(path string) *Store {
	return &Store{path: path}
}

// DSN turns a ledger path into a file: URI for the driver. The path is
// escaped so '?', '#' and '%' in a file or directory name stay part of it.
func DSN(path string, query url.Values) string {
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.Clean(path),
		OmitHost: true,
		RawQuery: query.Encode(),
	}
	return u.String()
}

func (s *Store) dsn() string {
	return DSN(s.path, url.Values{"_pragma": {fmt.Sprintf("busy_timeout(%d)", busyTimeout)}})
}

func (s *Store) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return fmt.Errorf("sqlite: open %s: %w", s.path, err)
	}
	s.db = db
	return nil
}

// Init creates the ledger file if needed, migrates it, and seeds the day type.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("sqlite: create ledger dir: %w", err)
	}
	if err := s.open(); err != nil {
		return err
	}
	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("sqlite: migrate: %w", err)
	}

	_, err := s.GetConfig(constants.SettingDayType)
	switch {
	case errors.Is(err, storage.ErrConfigNotFound):
		return s.SetConfig(constants.SettingDayType, constants.DefaultDayType)
	default:
		return err
	}
}

// Load opens an existing ledger and refuses one written by a newer binary.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return storage.ErrNotInitialized
	}
	if err := s.open(); err != nil {
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
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("sqlite: migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DialectSQLite), nil
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

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB exposes the connection for backups and doctor; nil before Init or Load.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
