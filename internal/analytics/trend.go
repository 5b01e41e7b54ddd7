package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/gridsight/outage-analytics/internal/domain"
)

// TrendResult compares two consecutive equal-length windows ending now.
type TrendResult struct {
	Recent        int     `json:"recent"`
	Older         int     `json:"older"`
	PercentChange float64 `json:"percent_change"`
	Direction     string  `json:"direction"` // "up", "down", or "stable"
}

// Trend splits history into two consecutive periodDays windows ending at the
// current clock time and compares outage counts. PercentChange is reported as
// 0 when the older window is empty; that avoids a divide-by-zero but is not a
// true 0% change, so Direction still reads "stable" in that case.
func Trend(history []domain.OutageRecord, periodDays int) TrendResult {
	now := domain.Now()
	period := time.Duration(periodDays) * 24 * time.Hour
	recentStart := now.Add(-period)
	olderStart := recentStart.Add(-period)

	recent, older := 0, 0
	for _, rec := range history {
		switch {
		case !rec.StartTime.Before(recentStart):
			recent++
		case !rec.StartTime.Before(olderStart):
			older++
		}
	}

	percentChange := 0.0
	if older > 0 {
		percentChange = float64(recent-older) / float64(older) * 100
	}

	direction := "stable"
	if percentChange > 0 {
		direction = "up"
	} else if percentChange < 0 {
		direction = "down"
	}

	return TrendResult{
		Recent:        recent,
		Older:         older,
		PercentChange: round1(percentChange),
		Direction:     direction,
	}
}

// Comparison relates one area's outage count to the mean across all areas.
type Comparison struct {
	Factor         float64 `json:"factor"`
	FactorLabel    string  `json:"factor_label"` // factor quoted to one decimal
	Rating         string  `json:"rating"`
	PercentageDiff int     `json:"percentage_diff"`
}

// CompareToAverage rates an area against the city-wide mean outage count.
// With no comparison data the result is exactly {factor 1, "average"},
// never NaN.
func CompareToAverage(stats domain.AreaStats, allAreas []domain.AreaStats) Comparison {
	if len(allAreas) == 0 {
		return Comparison{Factor: 1, FactorLabel: "1.0", Rating: "average"}
	}

	total := 0
	for _, a := range allAreas {
		total += a.Outages
	}
	avgOutages := float64(total) / float64(len(allAreas))
	if avgOutages == 0 {
		return Comparison{Factor: 1, FactorLabel: "1.0", Rating: "average"}
	}

	factor := float64(stats.Outages) / avgOutages

	rating := "average"
	switch {
	case factor < 0.5:
		rating = "excellent"
	case factor < 0.8:
		rating = "above-average"
	case factor > 1.5:
		rating = "poor"
	case factor > 1.2:
		rating = "below-average"
	}

	return Comparison{
		Factor:         factor,
		FactorLabel:    formatFixed1(factor),
		Rating:         rating,
		PercentageDiff: int(math.Round((factor - 1) * 100)),
	}
}

// AreaRanking pairs an area's aggregate with its reliability score.
type AreaRanking struct {
	domain.AreaStats
	Score ReliabilityResult `json:"score"`
}

// WorstNeighborhoods ranks areas by raw outage count, descending, truncated
// to limit, and attaches a reliability score computed from each entry's own
// aggregate. The ranking key is deliberately the count, not the score; ties
// keep first-seen history order.
func WorstNeighborhoods(history []domain.OutageRecord, limit int) []AreaRanking {
	areas := groupAreasOrdered(history)

	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].Outages > areas[j].Outages
	})
	if limit > 0 && len(areas) > limit {
		areas = areas[:limit]
	}

	ranked := make([]AreaRanking, len(areas))
	for i, a := range areas {
		ranked[i] = AreaRanking{AreaStats: *a, Score: Reliability(*a)}
	}
	return ranked
}

// WindowStats summarizes one look-back window for an area.
type WindowStats struct {
	OutageCount   int     `json:"outage_count"`
	TotalAffected int     `json:"total_affected"`
	AvgDuration   float64 `json:"avg_duration"`
}

// trendWindows defines the named look-back periods, in display order.
var trendWindows = []struct {
	Label string
	Days  int
}{
	{"30-day", 30},
	{"90-day", 90},
	{"1-year", 365},
}

// NeighborhoodTrends computes 30-day, 90-day, and 1-year windows for one zip.
func NeighborhoodTrends(zip string, history []domain.OutageRecord) map[string]WindowStats {
	now := domain.Now()
	trends := make(map[string]WindowStats, len(trendWindows))

	for _, w := range trendWindows {
		start := now.Add(-time.Duration(w.Days) * 24 * time.Hour)

		var stats WindowStats
		var totalDuration float64
		for _, rec := range history {
			if rec.ZipCode != zip || !rec.StartTime.After(start) {
				continue
			}
			stats.OutageCount++
			stats.TotalAffected += rec.NumPeople
			totalDuration += rec.DurationHours()
		}
		if stats.OutageCount > 0 {
			stats.AvgDuration = round2(totalDuration / float64(stats.OutageCount))
		}
		trends[w.Label] = stats
	}
	return trends
}

// DateRange is the first and last start day observed in a history slice.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Summary is the one-call rollup rendered by dashboard consumers.
type Summary struct {
	TotalOutages           int                              `json:"total_outages"`
	DateRange              DateRange                        `json:"date_range"`
	AverageOutagesPerMonth float64                          `json:"average_outages_per_month"`
	Trend                  TrendResult                      `json:"trend"`
	WorstNeighborhoods     []AreaRanking                    `json:"worst_neighborhoods"`
	PeakHourCount          int                              `json:"peak_hour_count"`
	PeakDay                string                           `json:"peak_day"`
	Seasonal               map[string]*SeasonStats          `json:"seasonal"`
	Timeline               map[string][]domain.OutageRecord `json:"timeline"`
}

// Summarize builds the full analytics rollup. Returns nil for empty history.
func Summarize(history []domain.OutageRecord) *Summary {
	if len(history) == 0 {
		return nil
	}

	hourly := BucketByHour(history)
	daily := BucketByDayOfWeek(history)
	monthly := BucketByMonth(history)

	first, last := history[0].StartTime, history[0].StartTime
	for _, rec := range history[1:] {
		if rec.StartTime.Before(first) {
			first = rec.StartTime
		}
		if rec.StartTime.After(last) {
			last = rec.StartTime
		}
	}

	peakHourCount := 0
	for _, count := range hourly {
		if count > peakHourCount {
			peakHourCount = count
		}
	}

	// Later weekday wins ties, scanning in display order.
	peakDay, peakDayCount := "", -1
	for _, day := range WeekdayNames {
		if daily[day] >= peakDayCount {
			peakDay, peakDayCount = day, daily[day]
		}
	}

	return &Summary{
		TotalOutages:           len(history),
		DateRange:              DateRange{Start: first.Format(time.DateOnly), End: last.Format(time.DateOnly)},
		AverageOutagesPerMonth: round1(float64(len(history)) / float64(len(monthly))),
		Trend:                  Trend(history, 30),
		WorstNeighborhoods:     WorstNeighborhoods(history, 5),
		PeakHourCount:          peakHourCount,
		PeakDay:                peakDay,
		Seasonal:               BucketBySeason(history),
		Timeline:               TimelineByDay(history),
	}
}
