package backup

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/dayrail/internal/constants"
	"github.com/julianstephens/dayrail/internal/storage/sqlite"
)

func setupLedger(t *testing.T) string {
	t.Helper()
	return setupLedgerAt(t, filepath.Join(t.TempDir(), "dayrail.db"))
}

func setupLedgerAt(t *testing.T, dbPath string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		t.Fatal(err)
	}
	db, err := sql.Open("sqlite", sqlite.DSN(dbPath, nil))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE completions (day TEXT NOT NULL, habit TEXT NOT NULL, completed INTEGER NOT NULL, PRIMARY KEY (day, habit))`,
		`INSERT INTO completions (day, habit, completed) VALUES ('2025-03-10', 'Focused Work', 1)`,
		`INSERT INTO completions (day, habit, completed) VALUES ('2025-03-10', 'Move Body', 0)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("setup %q: %v", stmt, err)
		}
	}
	return dbPath
}

// steppingClock returns a clock that advances one second per call
func steppingClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Second)
		return now
	}
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", sqlite.DSN(path, nil))
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM completions").Scan(&n); err != nil {
		t.Fatalf("count rows in %s: %v", path, err)
	}
	return n
}

func TestCreate(t *testing.T) {
	dbPath := setupLedger(t)
	mgr := NewManager(dbPath)
	mgr.now = func() time.Time { return time.Date(2025, 3, 10, 21, 5, 9, 0, time.Local) }

	info, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if info.Name() != "dayrail-20250310-210509.db" {
		t.Errorf("Name() = %q", info.Name())
	}
	if filepath.Dir(info.Path) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup written outside the backup dir: %s", info.Path)
	}
	if info.Size == 0 {
		t.Error("backup size is 0")
	}
	if got := countRows(t, info.Path); got != 2 {
		t.Errorf("expected 2 rows in backup, got %d", got)
	}
}

func TestCreate_PathWithQueryChars(t *testing.T) {
	dbPath := setupLedgerAt(t, filepath.Join(t.TempDir(), "sem?1#cs", "dayrail.db"))
	mgr := NewManager(dbPath)

	info, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if got := countRows(t, info.Path); got != 2 {
		t.Errorf("expected 2 rows in backup, got %d", got)
	}
	if _, err := mgr.Restore(info.Path); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("expected 2 rows after restore, got %d", got)
	}
}

func TestCreate_SameSecondGetsCounter(t *testing.T) {
	dbPath := setupLedger(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2025, 3, 10, 21, 5, 9, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if first.Path == second.Path {
		t.Fatal("two backups in the same second share a path")
	}
	if second.Name() != "dayrail-20250310-210509-1.db" {
		t.Errorf("second Name() = %q", second.Name())
	}

	backups, err := mgr.List()
	if err != nil || len(backups) != 2 {
		t.Fatalf("List() = %d backups, %v", len(backups), err)
	}
}

func TestCreate_NoDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("Create() error = %v, want %v", err, ErrNoDatabase)
	}
}

func TestCreate_Rotation(t *testing.T) {
	dbPath := setupLedger(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2025, 3, 1, 8, 0, 0, 0, time.Local))

	var created []Info
	for i := 0; i < constants.MaxBackups+5; i++ {
		info, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create() #%d failed: %v", i, err)
		}
		created = append(created, info)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	if backups[0].Path != created[len(created)-1].Path {
		t.Errorf("newest backup = %s, want %s", backups[0].Name(), created[len(created)-1].Name())
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
	if _, err := os.Stat(created[0].Path); !os.IsNotExist(err) {
		t.Error("oldest backup should have been rotated out")
	}
}

func TestList_IgnoresForeignFiles(t *testing.T) {
	dbPath := setupLedger(t)
	mgr := NewManager(dbPath)

	backups, err := mgr.List()
	if err != nil || len(backups) != 0 {
		t.Fatalf("List() before any backup = %v, %v", backups, err)
	}

	if err := os.MkdirAll(mgr.Dir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "dayrail-latest.db", "dayrail-20250310-2105.db", "dayrail-20250310-210509-x.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := mgr.Create(); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("expected only the real backup, got %d entries", len(backups))
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"dayrail-20250310-210509.db", true},
		{"dayrail-20250310-210509-12.db", true},
		{"dayrail-20250310-210509-.db", false},
		{"dayrail-20251310-210509.db", false},
		{"daylit-20250310-210509.db", false},
		{"dayrail-20250310-210509.sqlite", false},
	}
	for _, tt := range tests {
		if _, ok := parseName(tt.name); ok != tt.ok {
			t.Errorf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupLedger(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2025, 3, 10, 22, 0, 0, 0, time.Local))

	saved, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO completions (day, habit, completed) VALUES ('2025-03-11', 'Learn Something', 1)`); err != nil {
		t.Fatal(err)
	}
	db.Close()
	if got := countRows(t, dbPath); got != 3 {
		t.Fatalf("expected 3 rows before restore, got %d", got)
	}

	safety, err := mgr.Restore(saved.Path)
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("expected 2 rows after restore, got %d", got)
	}
	if safety.Path == "" {
		t.Fatal("Restore() should back up the current ledger first")
	}
	if got := countRows(t, safety.Path); got != 3 {
		t.Errorf("safety backup should hold the pre-restore ledger, got %d rows", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestore_Rejects(t *testing.T) {
	dbPath := setupLedger(t)
	mgr := NewManager(dbPath)
	dir := t.TempDir()

	if _, err := mgr.Restore(filepath.Join(dir, "missing.db")); err == nil {
		t.Error("Restore() of a missing file should fail")
	}

	garbage := filepath.Join(dir, "garbage.db")
	if err := os.WriteFile(garbage, []byte("this is not sqlite"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(garbage); err == nil {
		t.Error("Restore() of a non-database file should fail")
	}

	foreign := filepath.Join(dir, "foreign.db")
	db, err := sql.Open("sqlite", foreign)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE tasks (id TEXT)`); err != nil {
		t.Fatal(err)
	}
	db.Close()
	if _, err := mgr.Restore(foreign); !errors.Is(err, ErrNotLedger) {
		t.Errorf("Restore() of a foreign database error = %v, want %v", err, ErrNotLedger)
	}

	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("rejected restores must leave the ledger alone, got %d rows", got)
	}
}

func TestLatest(t *testing.T) {
	dbPath := setupLedger(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2025, 3, 10, 22, 0, 0, 0, time.Local))

	if _, ok, err := mgr.Latest(); ok || err != nil {
		t.Fatalf("Latest() on empty dir = %v, %v", ok, err)
	}
	_, _ = mgr.Create()
	second, _ := mgr.Create()

	latest, ok, err := mgr.Latest()
	if err != nil || !ok || latest.Path != second.Path {
		t.Errorf("Latest() = %+v, %v, %v; want %s", latest, ok, err, second.Name())
	}
}
