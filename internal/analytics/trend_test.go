package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsight/outage-analytics/internal/domain"
)

func TestTrend(t *testing.T) {
	freezeClock(t)

	t.Run("rising outage count", func(t *testing.T) {
		history := []domain.OutageRecord{
			outage("37201", testNow.Add(-5*24*time.Hour), 1, 100),
			outage("37201", testNow.Add(-10*24*time.Hour), 1, 100),
			outage("37201", testNow.Add(-15*24*time.Hour), 1, 100),
			outage("37201", testNow.Add(-40*24*time.Hour), 1, 100),
		}
		result := Trend(history, 30)

		assert.Equal(t, 3, result.Recent)
		assert.Equal(t, 1, result.Older)
		assert.InDelta(t, 200.0, result.PercentChange, 1e-9)
		assert.Equal(t, "up", result.Direction)
	})

	t.Run("falling outage count", func(t *testing.T) {
		history := []domain.OutageRecord{
			outage("37201", testNow.Add(-5*24*time.Hour), 1, 100),
			outage("37201", testNow.Add(-35*24*time.Hour), 1, 100),
			outage("37201", testNow.Add(-45*24*time.Hour), 1, 100),
		}
		result := Trend(history, 30)

		assert.Equal(t, 1, result.Recent)
		assert.Equal(t, 2, result.Older)
		assert.InDelta(t, -50.0, result.PercentChange, 1e-9)
		assert.Equal(t, "down", result.Direction)
	})

	t.Run("empty older window reports zero change", func(t *testing.T) {
		history := []domain.OutageRecord{
			outage("37201", testNow.Add(-24*time.Hour), 1, 100),
		}
		result := Trend(history, 30)

		assert.Equal(t, 1, result.Recent)
		assert.Zero(t, result.Older)
		assert.Zero(t, result.PercentChange)
		assert.Equal(t, "stable", result.Direction)
	})

	t.Run("records older than both windows are ignored", func(t *testing.T) {
		history := []domain.OutageRecord{
			outage("37201", testNow.Add(-100*24*time.Hour), 1, 100),
		}
		result := Trend(history, 30)
		assert.Zero(t, result.Recent)
		assert.Zero(t, result.Older)
	})
}

func TestCompareToAverage(t *testing.T) {
	t.Run("no comparison data returns exact default", func(t *testing.T) {
		result := CompareToAverage(domain.AreaStats{Outages: 5}, nil)
		assert.Equal(t, Comparison{Factor: 1, FactorLabel: "1.0", Rating: "average"}, result)
	})

	t.Run("all-zero areas avoid NaN", func(t *testing.T) {
		all := []domain.AreaStats{{}, {}}
		result := CompareToAverage(domain.AreaStats{}, all)
		assert.Equal(t, "average", result.Rating)
		assert.Equal(t, 1.0, result.Factor)
	})

	t.Run("rating bands", func(t *testing.T) {
		// Mean of 10 outages across areas.
		all := []domain.AreaStats{{Outages: 10}, {Outages: 10}}

		tests := []struct {
			outages  int
			rating   string
			percent  int
		}{
			{4, "excellent", -60},       // factor 0.4
			{7, "above-average", -30},   // factor 0.7
			{10, "average", 0},          // factor 1.0
			{13, "below-average", 30},   // factor 1.3
			{20, "poor", 100},           // factor 2.0
		}
		for _, tc := range tests {
			result := CompareToAverage(domain.AreaStats{Outages: tc.outages}, all)
			assert.Equal(t, tc.rating, result.Rating, "outages=%d", tc.outages)
			assert.Equal(t, tc.percent, result.PercentageDiff, "outages=%d", tc.outages)
		}
	})

	t.Run("factor label quoted to one decimal", func(t *testing.T) {
		all := []domain.AreaStats{{Outages: 3}}
		result := CompareToAverage(domain.AreaStats{Outages: 4}, all)
		assert.Equal(t, "1.3", result.FactorLabel)
	})
}

func TestWorstNeighborhoods(t *testing.T) {
	start := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	history := []domain.OutageRecord{
		outage("37203", start, 1, 100),
		outage("37201", start, 2, 40000),
		outage("37203", start.Add(time.Hour), 1, 100),
		outage("37203", start.Add(2*time.Hour), 1, 100),
		outage("37205", start, 8, 5000),
		outage("37205", start.Add(time.Hour), 8, 5000),
	}

	t.Run("ranked by raw outage count, not score", func(t *testing.T) {
		ranked := WorstNeighborhoods(history, 10)

		require.Len(t, ranked, 3)
		assert.Equal(t, "37203", ranked[0].Area)
		assert.Equal(t, 3, ranked[0].Outages)
		assert.Equal(t, "37205", ranked[1].Area)
		assert.Equal(t, "37201", ranked[2].Area)

		// 37205's reliability score is worse than 37203's, yet 37203 ranks
		// first because ranking uses the count.
		assert.Less(t, ranked[1].Score.Score, ranked[0].Score.Score)
	})

	t.Run("truncates to limit", func(t *testing.T) {
		ranked := WorstNeighborhoods(history, 2)
		require.Len(t, ranked, 2)
		assert.Equal(t, "37203", ranked[0].Area)
	})

	t.Run("ties keep first-seen order", func(t *testing.T) {
		tied := []domain.OutageRecord{
			outage("37216", start, 1, 10),
			outage("37210", start, 1, 10),
		}
		ranked := WorstNeighborhoods(tied, 10)
		require.Len(t, ranked, 2)
		assert.Equal(t, "37216", ranked[0].Area)
		assert.Equal(t, "37210", ranked[1].Area)
	})

	t.Run("attaches per-entry reliability", func(t *testing.T) {
		single := []domain.OutageRecord{outage("37201", start, 2, 40000)}
		ranked := WorstNeighborhoods(single, 10)
		require.Len(t, ranked, 1)
		assert.Equal(t, 71, ranked[0].Score.Score)
		assert.Equal(t, "Fair", ranked[0].Score.Rating)
	})
}

func TestNeighborhoodTrends(t *testing.T) {
	freezeClock(t)

	history := []domain.OutageRecord{
		outage("37201", testNow.Add(-10*24*time.Hour), 2, 1000),
		outage("37201", testNow.Add(-60*24*time.Hour), 4, 2000),
		outage("37201", testNow.Add(-200*24*time.Hour), 6, 3000),
		outage("37203", testNow.Add(-5*24*time.Hour), 1, 500), // other zip
	}
	trends := NeighborhoodTrends("37201", history)

	require.Len(t, trends, 3)
	assert.Equal(t, 1, trends["30-day"].OutageCount)
	assert.Equal(t, 1000, trends["30-day"].TotalAffected)
	assert.InDelta(t, 2.0, trends["30-day"].AvgDuration, 1e-9)

	assert.Equal(t, 2, trends["90-day"].OutageCount)
	assert.InDelta(t, 3.0, trends["90-day"].AvgDuration, 1e-9)

	assert.Equal(t, 3, trends["1-year"].OutageCount)
	assert.Equal(t, 6000, trends["1-year"].TotalAffected)
	assert.InDelta(t, 4.0, trends["1-year"].AvgDuration, 1e-9)
}

func TestSummarize(t *testing.T) {
	freezeClock(t)

	t.Run("empty history", func(t *testing.T) {
		assert.Nil(t, Summarize(nil))
	})

	t.Run("full rollup", func(t *testing.T) {
		history := []domain.OutageRecord{
			outage("37201", testNow.Add(-24*time.Hour), 2, 1000),    // Sunday
			outage("37201", testNow.Add(-48*time.Hour), 1, 500),     // Saturday
			outage("37203", testNow.Add(-31*24*time.Hour), 3, 2000), // June
		}
		summary := Summarize(history)

		require.NotNil(t, summary)
		assert.Equal(t, 3, summary.TotalOutages)
		assert.Equal(t, "2024-06-14", summary.DateRange.Start)
		assert.Equal(t, "2024-07-14", summary.DateRange.End)
		assert.InDelta(t, 1.5, summary.AverageOutagesPerMonth, 1e-9)
		assert.Equal(t, 2, summary.Trend.Recent)
		assert.NotEmpty(t, summary.WorstNeighborhoods)
		assert.Equal(t, "37201", summary.WorstNeighborhoods[0].Area)
		assert.Equal(t, 3, summary.PeakHourCount) // all records share the start hour
		assert.NotEmpty(t, summary.PeakDay)
		assert.Len(t, summary.Seasonal, 4)
		assert.Len(t, summary.Timeline, 3)
	})
}
