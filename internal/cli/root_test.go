package cli

import (
	"path/filepath"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/dayrail/internal/config"
	"github.com/julianstephens/dayrail/internal/constants"
	"github.com/julianstephens/dayrail/internal/keyring"
	"github.com/julianstephens/dayrail/internal/storage/memory"
	"github.com/julianstephens/dayrail/internal/storage/postgres"
	"github.com/julianstephens/dayrail/internal/storage/sqlite"
)

func TestOpenStore(t *testing.T) {
	gokeyring.MockInit()
	if err := keyring.SetConnectionString("postgres://me@db:5432/dayrail"); err != nil {
		t.Fatalf("failed to seed keyring: %v", err)
	}

	tests := []struct {
		name     string
		database string
		postgres bool
	}{
		{"sqlite path", filepath.Join(t.TempDir(), "dayrail.db"), false},
		{"postgres url", "postgresql://me@db/dayrail", true},
		{"postgres dsn", "host=db user=me dbname=dayrail", true},
		{"keyring", constants.KeyringDatabase, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Database = tt.database
			store, err := OpenStore(cfg)
			if err != nil {
				t.Fatalf("OpenStore() error: %v", err)
			}
			_, isPG := store.(*postgres.Store)
			_, isLite := store.(*sqlite.Store)
			if isPG != tt.postgres || isLite == tt.postgres {
				t.Errorf("OpenStore(%q) = %T", tt.database, store)
			}
		})
	}
}

func TestOpenStore_KeyringEmpty(t *testing.T) {
	gokeyring.MockInit()

	cfg := config.Default()
	cfg.Database = constants.KeyringDatabase
	if _, err := OpenStore(cfg); err == nil {
		t.Error("expected error when the keyring holds no connection string")
	}
}

func TestNewTracker_TimezonePrecedence(t *testing.T) {
	t.Setenv(constants.EnvTimezone, "")

	store := memory.New()
	cfg := config.Default()
	cfg.Timezone = "America/New_York"

	tr, err := NewTracker(store, cfg)
	if err != nil {
		t.Fatalf("NewTracker() error: %v", err)
	}
	if got := tr.Now().Location().String(); got != "America/New_York" {
		t.Errorf("location = %q, want config timezone", got)
	}

	if err := store.SetConfig(constants.SettingTimezone, "Asia/Tokyo"); err != nil {
		t.Fatal(err)
	}
	tr, err = NewTracker(store, cfg)
	if err != nil {
		t.Fatalf("NewTracker() error: %v", err)
	}
	if got := tr.Now().Location().String(); got != "Asia/Tokyo" {
		t.Errorf("location = %q, want stored setting", got)
	}
}

func TestNewTracker_EnvOverridesStoredSetting(t *testing.T) {
	t.Setenv(constants.EnvTimezone, "Europe/Paris")

	store := memory.New()
	if err := store.SetConfig(constants.SettingTimezone, "Asia/Tokyo"); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Timezone = "Europe/Paris" // what config.Load derives from the env var

	tr, err := NewTracker(store, cfg)
	if err != nil {
		t.Fatalf("NewTracker() error: %v", err)
	}
	if got := tr.Now().Location().String(); got != "Europe/Paris" {
		t.Errorf("location = %q, want env override", got)
	}
}

func TestNewTracker_UninitializedStore(t *testing.T) {
	t.Setenv(constants.EnvTimezone, "")

	// a sqlite store that was never opened
	store := sqlite.New(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := NewTracker(store, config.Default()); err != nil {
		t.Errorf("NewTracker() should tolerate an unopened store: %v", err)
	}
}
