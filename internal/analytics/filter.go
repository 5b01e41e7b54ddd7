package analytics

import (
	"strings"
	"time"

	"github.com/gridsight/outage-analytics/internal/domain"
	"github.com/gridsight/outage-analytics/internal/geo"
)

// ByDateRange keeps records whose start time falls within [start, end],
// inclusive on both ends.
func ByDateRange(history []domain.OutageRecord, start, end time.Time) []domain.OutageRecord {
	var out []domain.OutageRecord
	for _, rec := range history {
		if rec.StartTime.Before(start) || rec.StartTime.After(end) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ByCause keeps records matching the given cause, case-insensitively.
// Records with no cause are treated as "unknown".
func ByCause(history []domain.OutageRecord, cause string) []domain.OutageRecord {
	var out []domain.OutageRecord
	for _, rec := range history {
		c := rec.Cause
		if c == "" {
			c = "unknown"
		}
		if strings.EqualFold(c, cause) {
			out = append(out, rec)
		}
	}
	return out
}

// ByDurationRange keeps records whose duration in hours falls within
// [minHours, maxHours]. Pass a negative maxHours for no upper bound.
func ByDurationRange(history []domain.OutageRecord, minHours, maxHours float64) []domain.OutageRecord {
	var out []domain.OutageRecord
	for _, rec := range history {
		d := rec.DurationHours()
		if d < minHours {
			continue
		}
		if maxHours >= 0 && d > maxHours {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ByImpact keeps records affecting at least minCustomers.
func ByImpact(history []domain.OutageRecord, minCustomers int) []domain.OutageRecord {
	var out []domain.OutageRecord
	for _, rec := range history {
		if rec.NumPeople >= minCustomers {
			out = append(out, rec)
		}
	}
	return out
}

// SearchByArea keeps records whose resolved neighborhood name contains the
// search term, case-insensitively.
func SearchByArea(history []domain.OutageRecord, term string) []domain.OutageRecord {
	term = strings.ToLower(term)
	var out []domain.OutageRecord
	for _, rec := range history {
		name := strings.ToLower(geo.NeighborhoodName(rec.ZipCode))
		if strings.Contains(name, term) {
			out = append(out, rec)
		}
	}
	return out
}
