package tracker

import (
	"math"
	"time"

	"github.com/julianstephens/dayrail/internal/constants"
	"github.com/julianstephens/dayrail/internal/models"
	"github.com/julianstephens/dayrail/internal/storage"
	"github.com/julianstephens/dayrail/internal/utils"
)

// WeeklyAnalytics aggregates the seven calendar dates ending on now's date,
// inclusive, in now's location. Habits without records in the window are
// left out. When the window is empty the report is returned with ErrNoData.
func (t *Tracker) WeeklyAnalytics(now time.Time) (models.WeeklyReport, error) {
	start, end := utils.DateWindow(now, constants.WeeklyWindowDays)
	report := models.WeeklyReport{StartDay: start, EndDay: end}

	records, err := t.list(storage.CompletionFilter{StartDay: start, EndDay: end})
	if err != nil {
		return report, err
	}

	report.Habits = aggregate(records)
	if report.Empty() {
		return report, ErrNoData
	}
	return report, nil
}

func aggregate(records []models.CompletionRecord) []models.HabitStats {
	totals := make(map[models.HabitID]int)
	completed := make(map[models.HabitID]int)
	for _, r := range records {
		totals[r.Habit]++
		if r.Completed {
			completed[r.Habit]++
		}
	}

	var stats []models.HabitStats
	for _, habit := range models.CoreHabits {
		total := totals[habit]
		if total == 0 {
			continue
		}
		stats = append(stats, models.HabitStats{
			Habit:     habit,
			Total:     total,
			Completed: completed[habit],
			Pct:       percent(completed[habit], total),
		})
	}
	return stats
}

// DailyRates returns the completion rate of every date between from and to
// (inclusive) that has at least one record, oldest first.
func (t *Tracker) DailyRates(from, to string) ([]models.DailyRate, error) {
	days, err := utils.DatesBetween(from, to)
	if err != nil {
		return nil, err
	}

	records, err := t.list(storage.CompletionFilter{StartDay: from, EndDay: to})
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*models.DailyRate)
	for _, r := range records {
		rate, ok := byDay[r.Date]
		if !ok {
			rate = &models.DailyRate{Date: r.Date}
			byDay[r.Date] = rate
		}
		rate.Recorded++
		if r.Completed {
			rate.Completed++
		}
	}

	var rates []models.DailyRate
	for _, day := range days {
		rate, ok := byDay[day]
		if !ok {
			continue
		}
		rate.Rate = percent(rate.Completed, rate.Recorded)
		rates = append(rates, *rate)
	}
	return rates, nil
}

// percent returns part/total*100 to one decimal. Exact halves round to even,
// so 1 of 16 reports 6.2.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.RoundToEven(float64(part)/float64(total)*1000) / 10
}
