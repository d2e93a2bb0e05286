// Package memory provides a non-persistent storage.Provider used by tests and
// the --ephemeral flag.
package memory

import (
	"sort"
	"sync"

	"github.com/julianstephens/dayrail/internal/models"
	"github.com/julianstephens/dayrail/internal/storage"
)

type completionKey struct {
	day   string
	habit models.HabitID
}

// Store is safe for concurrent use; the TUI reads and writes it from
// separate command goroutines.
type Store struct {
	mu          sync.RWMutex
	config      map[string]string
	completions map[completionKey]models.CompletionRecord
	failWith    error
}

func New() *Store {
	return &Store{
		config:      make(map[string]string),
		completions: make(map[completionKey]models.CompletionRecord),
	}
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

func (s *Store) Init() error { return s.failure() }
func (s *Store) Load() error { return s.failure() }
func (s *Store) Close() error { return nil }

func (s *Store) failure() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failWith
}

func (s *Store) GetConfig(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return "", s.failWith
	}
	value, ok := s.config[key]
	if !ok {
		return "", storage.ErrConfigNotFound
	}
	return value, nil
}

func (s *Store) SetConfig(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.config[key] = value
	return nil
}

func (s *Store) ListCompletions(filter storage.CompletionFilter) ([]models.CompletionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	var records []models.CompletionRecord
	for _, r := range s.completions {
		if filter.Matches(r.Date) {
			records = append(records, r)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].Habit < records[j].Habit
	})
	return records, nil
}

func (s *Store) UpsertCompletion(record models.CompletionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.completions[completionKey{day: record.Date, habit: record.Habit}] = record
	return nil
}

func (s *Store) GetConfigPath() string {
	return ":memory:"
}
