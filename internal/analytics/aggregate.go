package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gridsight/outage-analytics/internal/domain"
	"github.com/gridsight/outage-analytics/internal/geo"
)

// UnknownAreaKey groups records that carry no zip code at all.
const UnknownAreaKey = "unknown"

// WeekdayNames lists day names in display order. BucketByDayOfWeek results
// should be rendered in this order; the counting itself maps timestamps
// through the Sunday-indexed time.Weekday convention.
var WeekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// SeasonNames lists season names in display order.
var SeasonNames = []string{"Winter", "Spring", "Summer", "Fall"}

// seasonMonths maps each season to its calendar month numbers.
var seasonMonths = map[string][]int{
	"Winter": {12, 1, 2},
	"Spring": {3, 4, 5},
	"Summer": {6, 7, 8},
	"Fall":   {9, 10, 11},
}

// BucketByHour counts outages by start hour. Every bucket 0..23 is present
// even when the history is sparse or empty.
func BucketByHour(history []domain.OutageRecord) map[int]int {
	counts := make(map[int]int, 24)
	for hour := 0; hour < 24; hour++ {
		counts[hour] = 0
	}
	for _, rec := range history {
		counts[rec.StartTime.Hour()]++
	}
	return counts
}

// MonthStats aggregates one calendar month of outage history.
type MonthStats struct {
	Outages       int                   `json:"outages"`
	TotalDuration float64               `json:"total_duration"`
	TotalAffected int                   `json:"total_affected"`
	AvgDuration   float64               `json:"avg_duration"`
	AvgAffected   int                   `json:"avg_affected"`
	Incidents     []domain.OutageRecord `json:"incidents"`
}

// BucketByMonth groups history by "YYYY-MM" start month. Unlike BucketByHour
// the result is sparse: a month with no outages never appears as a key.
// Averages are computed in a second pass after all sums are accumulated.
func BucketByMonth(history []domain.OutageRecord) map[string]*MonthStats {
	months := make(map[string]*MonthStats)

	for _, rec := range history {
		key := rec.StartTime.Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &MonthStats{}
			months[key] = m
		}
		m.Outages++
		m.TotalDuration += rec.DurationHours()
		m.TotalAffected += rec.NumPeople
		m.Incidents = append(m.Incidents, rec)
	}

	for _, m := range months {
		m.AvgDuration = round2(m.TotalDuration / float64(m.Outages))
		m.AvgAffected = int(math.Round(float64(m.TotalAffected) / float64(m.Outages)))
	}
	return months
}

// BucketByDayOfWeek counts outages by weekday name. All seven day names are
// pre-populated at zero. The map key for a record comes from time.Weekday,
// which is Sunday-indexed; WeekdayNames provides the Monday-first display
// order. The two orderings are independent and both deliberate.
func BucketByDayOfWeek(history []domain.OutageRecord) map[string]int {
	counts := make(map[string]int, len(WeekdayNames))
	for _, day := range WeekdayNames {
		counts[day] = 0
	}
	for _, rec := range history {
		counts[rec.StartTime.Weekday().String()]++
	}
	return counts
}

// SeasonStats aggregates outages for one season. AvgDuration is nil for
// seasons with no outages rather than zero, so renderers can distinguish
// "no data" from "instantaneous outages".
type SeasonStats struct {
	Months      []int    `json:"months"`
	Outages     int      `json:"outages"`
	Duration    float64  `json:"duration"`
	AvgDuration *float64 `json:"avg_duration,omitempty"`
}

// BucketBySeason groups history by calendar season of the start month.
// Every season is present in the result.
func BucketBySeason(history []domain.OutageRecord) map[string]*SeasonStats {
	seasons := make(map[string]*SeasonStats, len(SeasonNames))
	for _, name := range SeasonNames {
		seasons[name] = &SeasonStats{Months: seasonMonths[name]}
	}

	for _, rec := range history {
		month := int(rec.StartTime.Month())
		for _, name := range SeasonNames {
			s := seasons[name]
			if containsMonth(s.Months, month) {
				s.Outages++
				s.Duration += rec.DurationHours()
			}
		}
	}

	for _, s := range seasons {
		if s.Outages > 0 {
			avg := round2(s.Duration / float64(s.Outages))
			s.AvgDuration = &avg
		}
	}
	return seasons
}

// GroupByArea aggregates history into per-area statistics keyed by zip code,
// with UnknownAreaKey collecting records that have none.
func GroupByArea(history []domain.OutageRecord) map[string]domain.AreaStats {
	ordered := groupAreasOrdered(history)
	areas := make(map[string]domain.AreaStats, len(ordered))
	for _, a := range ordered {
		areas[a.Area] = *a
	}
	return areas
}

// groupAreasOrdered aggregates per-area stats preserving first-seen order,
// which keeps rankings deterministic when counts tie.
func groupAreasOrdered(history []domain.OutageRecord) []*domain.AreaStats {
	index := make(map[string]*domain.AreaStats)
	var order []*domain.AreaStats

	for _, rec := range history {
		key := rec.ZipCode
		if key == "" {
			key = UnknownAreaKey
		}
		a, ok := index[key]
		if !ok {
			a = &domain.AreaStats{Area: key, Name: geo.NeighborhoodName(rec.ZipCode)}
			index[key] = a
			order = append(order, a)
		}
		a.Outages++
		a.TotalDuration += rec.DurationHours()
		a.TotalAffected += rec.NumPeople
	}

	for _, a := range order {
		a.AvgDuration = round2(a.TotalDuration / float64(a.Outages))
		a.AvgAffected = int(math.Round(float64(a.TotalAffected) / float64(a.Outages)))
	}
	return order
}

// TimelineByDay groups records by "YYYY-MM-DD" start day. Grouping only, no
// aggregation.
func TimelineByDay(history []domain.OutageRecord) map[string][]domain.OutageRecord {
	timeline := make(map[string][]domain.OutageRecord)
	for _, rec := range history {
		key := rec.StartTime.UTC().Format(time.DateOnly)
		timeline[key] = append(timeline[key], rec)
	}
	return timeline
}

// MonthRef names one month and its aggregate.
type MonthRef struct {
	Month string      `json:"month"`
	Stats *MonthStats `json:"stats"`
}

// WorstMonths holds the argmax month per metric.
type WorstMonths struct {
	ByOutages  MonthRef `json:"by_outages"`
	ByDuration MonthRef `json:"by_duration"`
	ByImpact   MonthRef `json:"by_impact"`
}

// WorstMonth finds the worst month by outage count, total duration, and total
// customers affected. Returns nil for an empty summary. Ties go to the
// earliest month.
func WorstMonth(monthly map[string]*MonthStats) *WorstMonths {
	if len(monthly) == 0 {
		return nil
	}

	keys := make([]string, 0, len(monthly))
	for k := range monthly {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	worst := &WorstMonths{
		ByOutages:  MonthRef{Month: keys[0], Stats: monthly[keys[0]]},
		ByDuration: MonthRef{Month: keys[0], Stats: monthly[keys[0]]},
		ByImpact:   MonthRef{Month: keys[0], Stats: monthly[keys[0]]},
	}
	for _, k := range keys[1:] {
		m := monthly[k]
		if m.Outages > worst.ByOutages.Stats.Outages {
			worst.ByOutages = MonthRef{Month: k, Stats: m}
		}
		if m.TotalDuration > worst.ByDuration.Stats.TotalDuration {
			worst.ByDuration = MonthRef{Month: k, Stats: m}
		}
		if m.TotalAffected > worst.ByImpact.Stats.TotalAffected {
			worst.ByImpact = MonthRef{Month: k, Stats: m}
		}
	}
	return worst
}

func containsMonth(months []int, month int) bool {
	for _, m := range months {
		if m == month {
			return true
		}
	}
	return false
}

// round2 rounds to two decimal places; aggregate averages are quoted to
// hundredths in every export surface.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// formatFixed1 quotes a value to one decimal place, the precision used for
// user-facing factors and percentages.
func formatFixed1(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
