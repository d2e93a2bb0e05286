// Package migration applies the versioned schema files embedded in
// github.com/julianstephens/dayrail/migrations to a SQLite or PostgreSQL ledger.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/dayrail/internal/logger"
)

// ErrSchemaTooNew is returned when the ledger was migrated by a newer dayrail
var ErrSchemaTooNew = errors.New("ledger schema is newer than this dayrail build")

// Dialect selects the bind-parameter syntax of the target database
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

func (d Dialect) String() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// bind returns the n-th (1-based) placeholder
func (d Dialect) bind(n int) string {
	if d == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Migration is one NNN_name.sql file
type Migration struct {
	Version int
	Name    string
	SQL     string
}

func (m Migration) String() string {
	return fmt.Sprintf("%03d_%s", m.Version, m.Name)
}

// Status compares the ledger's schema with the embedded files
type Status struct {
	Current   int
	Latest    int
	Pending   int
	AppliedAt string // RFC 3339, empty on a fresh ledger
}

func (s Status) UpToDate() bool {
	return s.Pending == 0 && s.Current == s.Latest
}

type Runner struct {
	db      *sql.DB
	files   fs.FS
	dialect Dialect
}

func NewRunner(db *sql.DB, files fs.FS, dialect Dialect) *Runner {
	return &Runner{db: db, files: files, dialect: dialect}
}

func (r *Runner) ensureVersionTable() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

func (r *Runner) current() (int, string, error) {
	if err := r.ensureVersionTable(); err != nil {
		return 0, "", fmt.Errorf("failed to create schema_version: %w", err)
	}

	var (
		version   int
		appliedAt string
	)
	err := r.db.QueryRow("SELECT version, applied_at FROM schema_version").Scan(&version, &appliedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", nil
	}
	if err != nil {
		return 0, "", fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, appliedAt, nil
}

// CurrentVersion returns the applied schema version, 0 for a fresh ledger
func (r *Runner) CurrentVersion() (int, error) {
	version, _, err := r.current()
	return version, err
}

// parseFileName splits "001_init.sql" into (1, "init")
func parseFileName(name string) (int, string, error) {
	prefix, rest, ok := strings.Cut(strings.TrimSuffix(name, ".sql"), "_")
	if !ok || rest == "" {
		return 0, "", fmt.Errorf("invalid migration filename format: %s (expected NNN_name.sql)", name)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, "", fmt.Errorf("invalid version number in filename %s: %w", name, err)
	}
	if version < 1 {
		return 0, "", fmt.Errorf("invalid version number in filename %s: version must be at least 1", name)
	}
	return version, rest, nil
}

// Migrations reads the .sql files in version order
func (r *Runner) Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(r.files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var out []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		version, name, err := parseFileName(entry.Name())
		if err != nil {
			return nil, err
		}
		body, err := fs.ReadFile(r.files, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		out = append(out, Migration{Version: version, Name: name, SQL: string(body)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}
	return out, nil
}

// Status reports how far the ledger is behind the embedded files
func (r *Runner) Status() (Status, error) {
	version, appliedAt, err := r.current()
	if err != nil {
		return Status{}, err
	}
	all, err := r.Migrations()
	if err != nil {
		return Status{}, err
	}

	st := Status{Current: version, AppliedAt: appliedAt}
	for _, m := range all {
		if m.Version > version {
			st.Pending++
		}
		st.Latest = m.Version
	}
	return st, nil
}

// Check fails with ErrSchemaTooNew when the ledger is ahead of this build
func (r *Runner) Check() error {
	st, err := r.Status()
	if err != nil {
		return err
	}
	if st.Current > st.Latest {
		return fmt.Errorf("%w (ledger version %d, supported %d): upgrade dayrail", ErrSchemaTooNew, st.Current, st.Latest)
	}
	return nil
}

// Apply runs every pending migration. Each file and its version bump share a
// transaction, so a failed file leaves the previous version in place.
func (r *Runner) Apply() (int, error) {
	if err := r.Check(); err != nil {
		return 0, err
	}
	version, err := r.CurrentVersion()
	if err != nil {
		return 0, err
	}
	all, err := r.Migrations()
	if err != nil {
		return 0, err
	}

	var pending []Migration
	for _, m := range all {
		if m.Version > version {
			pending = append(pending, m)
		}
	}
	if len(pending) == 0 {
		logger.Debug("Schema up to date", "dialect", r.dialect, "version", version)
		return 0, nil
	}

	started := time.Now()
	setVersion := fmt.Sprintf("INSERT INTO schema_version (version, applied_at) VALUES (%s, %s)", r.dialect.bind(1), r.dialect.bind(2))
	for i, m := range pending {
		if err := r.applyOne(m, setVersion); err != nil {
			return i, err
		}
		logger.Info("Applied migration", "dialect", r.dialect, "migration", m.String())
	}

	logger.Info("Schema migrated",
		"dialect", r.dialect,
		"from", version,
		"to", pending[len(pending)-1].Version,
		"took", time.Since(started).Round(time.Millisecond),
	)
	return len(pending), nil
}

func (r *Runner) applyOne(m Migration, setVersion string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration %s: %w", m, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("failed to apply migration %s: %w", m, err)
	}
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear schema version in %s: %w", m, err)
	}
	if _, err := tx.Exec(setVersion, m.Version, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to record schema version in %s: %w", m, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", m, err)
	}
	return nil
}
