package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dayrail/internal/models"
	"github.com/julianstephens/dayrail/internal/storage"
)

func (s *Store) ListCompletions(filter storage.CompletionFilter) ([]models.CompletionRecord, error) {
	if s.db == nil {
		return nil, storage.ErrNotInitialized
	}
	var where []string
	var args []interface{}
	if filter.Date != "" {
		where = append(where, "day = ?")
		args = append(args, filter.Date)
	}
	if filter.StartDay != "" {
		where = append(where, "day >= ?")
		args = append(args, filter.StartDay)
	}
	if filter.EndDay != "" {
		where = append(where, "day <= ?")
		args = append(args, filter.EndDay)
	}

	query := "SELECT id, day, habit, completed, day_type, miss_reason, updated_at FROM completions"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY day, habit"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.CompletionRecord
	for rows.Next() {
		var r models.CompletionRecord
		var habit, missReason, updatedAt string

		if err := rows.Scan(&r.ID, &r.Date, &habit, &r.Completed, &r.DayType, &missReason, &updatedAt); err != nil {
			return nil, err
		}
		r.Habit = models.HabitID(habit)
		r.MissReason = models.MissReason(missReason)

		r.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at for %s/%s: %w", r.Date, habit, err)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("malformed completion record %s/%s: %w", r.Date, habit, err)
		}

		records = append(records, r)
	}

	return records, rows.Err()
}

func (s *Store) UpsertCompletion(record models.CompletionRecord) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	_, err := s.db.Exec(`
		INSERT INTO completions (id, day, habit, completed, day_type, miss_reason, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(day, habit) DO UPDATE SET
			id = excluded.id,
			completed = excluded.completed,
			day_type = excluded.day_type,
			miss_reason = excluded.miss_reason,
			updated_at = excluded.updated_at`,
		record.ID, record.Date, string(record.Habit), record.Completed, record.DayType,
		string(record.MissReason), record.UpdatedAt.Format(time.RFC3339))

	return err
}
