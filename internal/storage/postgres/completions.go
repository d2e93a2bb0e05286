package postgres

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dayrail/internal/models"
	"github.com/julianstephens/dayrail/internal/storage"
)

func (s *Store) ListCompletions(filter storage.CompletionFilter) ([]models.CompletionRecord, error) {
	if s.db == nil {
		return nil, storage.ErrNotInitialized
	}
	var where []string
	var args []interface{}
	add := func(cond, value string) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.Date != "" {
		add("day = $%d::date", filter.Date)
	}
	if filter.StartDay != "" {
		add("day >= $%d::date", filter.StartDay)
	}
	if filter.EndDay != "" {
		add("day <= $%d::date", filter.EndDay)
	}

	query := `SELECT id, to_char(day, 'YYYY-MM-DD'), habit, completed, day_type, miss_reason, updated_at FROM completions`
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
		var habit, missReason string

		if err := rows.Scan(&r.ID, &r.Date, &habit, &r.Completed, &r.DayType, &missReason, &r.UpdatedAt); err != nil {
			return nil, err
		}
		r.Habit = models.HabitID(habit)
		r.MissReason = models.MissReason(missReason)

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
		VALUES ($1, $2::date, $3, $4, $5, $6, $7)
		ON CONFLICT (day, habit) DO UPDATE SET
			id = EXCLUDED.id,
			completed = EXCLUDED.completed,
			day_type = EXCLUDED.day_type,
			miss_reason = EXCLUDED.miss_reason,
			updated_at = EXCLUDED.updated_at`,
		record.ID, record.Date, string(record.Habit), record.Completed, record.DayType,
		string(record.MissReason), record.UpdatedAt)

	return err
}
