package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/gridsight/outage-analytics/internal/domain"
)

// testNow is the frozen clock time shared by tests that touch trend windows
// or recency penalties. A Monday at noon UTC, outside peak and night bands.
var testNow = time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

func freezeClock(t *testing.T) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(testNow))
	t.Cleanup(func() { domain.SetClock(nil) })
}

// outage builds a history record with the given zip, start, duration, and
// customer count.
func outage(zip string, start time.Time, durationHours float64, people int) domain.OutageRecord {
	return domain.OutageRecord{
		ID:              fmt.Sprintf("out-%s-%d-%d", zip, start.Unix(), people),
		ZipCode:         zip,
		StartTime:       start,
		LastUpdatedTime: start.Add(time.Duration(durationHours * float64(time.Hour))),
		NumPeople:       people,
	}
}
