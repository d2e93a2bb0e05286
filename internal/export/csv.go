// Package export writes the completion ledger in portable formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/julianstephens/dayrail/internal/models"
)

// Header is the column layout of the history CSV
var Header = []string{"date", "habit", "completed", "day_type", "miss_reason"}

// WriteCSV writes records as CSV with a header row, in the order given
func WriteCSV(w io.Writer, records []models.CompletionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Date,
			string(r.Habit),
			strconv.FormatBool(r.Completed),
			r.DayType,
			string(r.MissReason),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write %s/%s: %w", r.Date, r.Habit, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
