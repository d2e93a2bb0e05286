package storage

import (
	"errors"

	"github.com/julianstephens/dayrail/internal/models"
)

var (
	// ErrConfigNotFound is returned by GetConfig when the key has never been set
	ErrConfigNotFound = errors.New("config key not found")
	// ErrNotInitialized is returned by Load when the backing store does not exist yet
	ErrNotInitialized = errors.New("storage not initialized")
)

// CompletionFilter narrows ListCompletions. The zero value matches the whole ledger.
type CompletionFilter struct {
	Date     string // exact day, YYYY-MM-DD
	StartDay string // inclusive lower bound, YYYY-MM-DD
	EndDay   string // inclusive upper bound, YYYY-MM-DD
}

// Matches reports whether a record dated day passes the filter.
// YYYY-MM-DD strings order lexically, so plain comparison is enough.
func (f CompletionFilter) Matches(day string) bool {
	if f.Date != "" && day != f.Date {
		return false
	}
	if f.StartDay != "" && day < f.StartDay {
		return false
	}
	if f.EndDay != "" && day > f.EndDay {
		return false
	}
	return true
}

// Provider is the persistence collaborator of the tracker. It holds the
// key/value configuration and the completion ledger.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Config
	GetConfig(key string) (string, error)
	SetConfig(key, value string) error

	// Ledger
	// ListCompletions returns records ordered by day then habit.
	ListCompletions(filter CompletionFilter) ([]models.CompletionRecord, error)
	// UpsertCompletion replaces any record sharing (Date, Habit), else inserts.
	UpsertCompletion(record models.CompletionRecord) error

	// Utils
	GetConfigPath() string
}
