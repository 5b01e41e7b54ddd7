// Package export renders analytics results as downloadable CSV text.
//
// The row shape is a compatibility contract with existing report consumers:
// the header row is written bare, every data cell is double-quote wrapped,
// fields join on commas and rows on newlines, with no quote escaping. The
// stdlib csv writer would escape embedded quotes and break byte-for-byte
// parity, so rows are assembled by hand.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/gridsight/outage-analytics/internal/analytics"
	"github.com/gridsight/outage-analytics/internal/domain"
	"github.com/gridsight/outage-analytics/internal/geo"
)

var historyHeaders = []string{
	"Date", "Time", "Duration (hrs)", "People Affected", "Status", "Area", "Zip Code",
}

var scorecardHeaders = []string{
	"Neighborhood", "Zip Code", "Reliability Score", "Rating",
	"Outages (30-day)", "Avg Duration (hrs)", "People Affected (Avg)",
}

// HistoryCSV renders raw outage history, one row per record. A non-empty
// zip keeps only records matching it exactly. Timestamps render in UTC.
func HistoryCSV(history []domain.OutageRecord, zip string) string {
	rows := make([][]string, 0, len(history))
	for _, rec := range history {
		if zip != "" && rec.ZipCode != zip {
			continue
		}

		zipCell := rec.ZipCode
		if zipCell == "" {
			zipCell = "N/A"
		}
		status := rec.Status
		if status == "" {
			status = "unknown"
		}
		start := rec.StartTime.UTC()

		rows = append(rows, []string{
			formatDate(start),
			formatTime(start),
			fmt.Sprintf("%.2f", rec.DurationHours()),
			fmt.Sprintf("%d", rec.NumPeople),
			status,
			geo.NeighborhoodName(rec.ZipCode),
			zipCell,
		})
	}
	return renderCSV(historyHeaders, rows)
}

// ScorecardCSV renders the neighborhood scorecard table, preserving the
// caller's ordering (Scorecards already sorts by safety score).
func ScorecardCSV(cards []analytics.Scorecard) string {
	rows := make([][]string, 0, len(cards))
	for _, sc := range cards {
		rows = append(rows, []string{
			sc.Name,
			sc.Area,
			fmt.Sprintf("%d", sc.Safety.Score),
			sc.Safety.Rating,
			fmt.Sprintf("%d", sc.Outages),
			fmt.Sprintf("%.2f", sc.AvgDuration),
			fmt.Sprintf("%d", sc.AvgAffected),
		})
	}
	return renderCSV(scorecardHeaders, rows)
}

func renderCSV(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	for _, row := range rows {
		b.WriteByte('\n')
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(cell)
			b.WriteByte('"')
		}
	}
	return b.String()
}

// formatDate renders M/D/YYYY without zero padding, the en-US short form
// legacy report tooling expects.
func formatDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// formatTime renders h:mm:ss AM/PM.
func formatTime(t time.Time) string {
	return t.Format("3:04:05 PM")
}
