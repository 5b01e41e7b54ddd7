package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsight/outage-analytics/internal/analytics"
	"github.com/gridsight/outage-analytics/internal/domain"
)

func record(zip string, start time.Time, durationHours float64, people int, status string) domain.OutageRecord {
	return domain.OutageRecord{
		ZipCode:         zip,
		StartTime:       start,
		LastUpdatedTime: start.Add(time.Duration(durationHours * float64(time.Hour))),
		NumPeople:       people,
		Status:          status,
	}
}

func TestHistoryCSV(t *testing.T) {
	start := time.Date(2024, 7, 15, 9, 30, 0, 0, time.UTC)

	t.Run("header row is bare, cells are quoted", func(t *testing.T) {
		csv := HistoryCSV([]domain.OutageRecord{
			record("37201", start, 2, 40000, "active"),
		}, "")

		lines := strings.Split(csv, "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "Date,Time,Duration (hrs),People Affected,Status,Area,Zip Code", lines[0])
		assert.Equal(t, `"7/15/2024","9:30:00 AM","2.00","40000","active","Downtown/Capitol Hill","37201"`, lines[1])
	})

	t.Run("zip filter drops non-matching rows, keeps header", func(t *testing.T) {
		history := []domain.OutageRecord{
			record("37201", start, 1, 100, "active"),
			record("37203", start, 1, 100, "active"),
			record("37201", start.Add(time.Hour), 1, 100, "restored"),
		}
		csv := HistoryCSV(history, "37201")

		lines := strings.Split(csv, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "Date,Time,Duration (hrs),People Affected,Status,Area,Zip Code", lines[0])
		for _, line := range lines[1:] {
			assert.Contains(t, line, `"37201"`)
		}
	})

	t.Run("missing fields take defaults", func(t *testing.T) {
		csv := HistoryCSV([]domain.OutageRecord{
			record("", start, 0.5, 10, ""),
		}, "")

		lines := strings.Split(csv, "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, `"7/15/2024","9:30:00 AM","0.50","10","unknown","Unknown Area","N/A"`, lines[1])
	})

	t.Run("afternoon times render 12-hour", func(t *testing.T) {
		csv := HistoryCSV([]domain.OutageRecord{
			record("37201", time.Date(2024, 12, 3, 16, 5, 9, 0, time.UTC), 1, 10, "active"),
		}, "")
		assert.Contains(t, csv, `"12/3/2024","4:05:09 PM"`)
	})

	t.Run("empty history is just the header", func(t *testing.T) {
		csv := HistoryCSV(nil, "")
		assert.Equal(t, "Date,Time,Duration (hrs),People Affected,Status,Area,Zip Code", csv)
	})
}

func TestScorecardCSV(t *testing.T) {
	cards := []analytics.Scorecard{
		{
			AreaStats: domain.AreaStats{
				Area:        "37201",
				Name:        "Downtown/Capitol Hill",
				Outages:     3,
				AvgDuration: 2.5,
				AvgAffected: 1200,
			},
			Safety: analytics.SafetyResult{Score: 85, Rating: "Excellent"},
		},
		{
			AreaStats: domain.AreaStats{
				Area:        "37206",
				Name:        "East Nashville",
				Outages:     7,
				AvgDuration: 4,
				AvgAffected: 300,
			},
			Safety: analytics.SafetyResult{Score: 52, Rating: "Fair"},
		},
	}

	csv := ScorecardCSV(cards)
	lines := strings.Split(csv, "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "Neighborhood,Zip Code,Reliability Score,Rating,Outages (30-day),Avg Duration (hrs),People Affected (Avg)", lines[0])
	assert.Equal(t, `"Downtown/Capitol Hill","37201","85","Excellent","3","2.50","1200"`, lines[1])
	assert.Equal(t, `"East Nashville","37206","52","Fair","7","4.00","300"`, lines[2])
}
