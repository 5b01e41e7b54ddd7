package crew

import (
	"math/rand"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsight/outage-analytics/internal/domain"
)

var testNow = time.Date(2024, 7, 15, 14, 0, 0, 0, time.UTC)

func freezeClock(t *testing.T) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(testNow))
	t.Cleanup(func() { domain.SetClock(nil) })
}

func assignedOutage(id, zip string, lat, lon float64) domain.OutageRecord {
	return domain.OutageRecord{
		ID:        id,
		ZipCode:   zip,
		Status:    "Assigned",
		Latitude:  lat,
		Longitude: lon,
		StartTime: testNow.Add(-30 * time.Minute),
	}
}

func TestGenerate(t *testing.T) {
	freezeClock(t)
	rng := rand.New(rand.NewSource(42))

	t.Run("no assigned outages yields no crews", func(t *testing.T) {
		outages := []domain.OutageRecord{
			{ID: "o1", Status: "Investigating"},
		}
		assert.Nil(t, Generate(outages, 0.8, rng))
	})

	t.Run("crews sit between depot and outage", func(t *testing.T) {
		outages := []domain.OutageRecord{
			assignedOutage("o1", "37206", 36.1772, -86.7275),
		}
		crews := Generate(outages, 0.8, rng)

		require.Len(t, crews, 1)
		c := crews[0]
		assert.Equal(t, 100, c.ID)
		assert.Equal(t, "Crew #100", c.Name)
		assert.Equal(t, "o1", c.OutageID)
		assert.Equal(t, "37206", c.OutageZip)
		assert.Equal(t, StatusEnRoute, c.Status)
		assert.True(t, c.LastUpdated.Equal(testNow))

		// Position is 30-80% of the way out, so strictly between endpoints.
		assert.Greater(t, c.Latitude, DepotLatitude)
		assert.Less(t, c.Latitude, 36.1772)
		assert.GreaterOrEqual(t, c.Technicians, 2)
		assert.LessOrEqual(t, c.Technicians, 4)
		assert.GreaterOrEqual(t, c.Efficiency, 0.7)
		assert.LessOrEqual(t, c.Efficiency, 1.0)
	})

	t.Run("density scales the fleet, round-robin assignment", func(t *testing.T) {
		outages := []domain.OutageRecord{
			assignedOutage("o1", "37201", 36.1627, -86.7816),
			assignedOutage("o2", "37206", 36.1772, -86.7275),
			assignedOutage("o3", "37216", 36.2168, -86.7286),
		}
		crews := Generate(outages, 0.8, rng)

		require.Len(t, crews, 3) // ceil(3 * 0.8)
		assert.Equal(t, "o1", crews[0].OutageID)
		assert.Equal(t, "o2", crews[1].OutageID)
		assert.Equal(t, "o3", crews[2].OutageID)
	})

	t.Run("at least one crew for any assigned work", func(t *testing.T) {
		outages := []domain.OutageRecord{
			assignedOutage("o1", "37201", 36.1627, -86.7816),
		}
		crews := Generate(outages, 0.1, rng)
		assert.Len(t, crews, 1)
	})
}

func TestETA(t *testing.T) {
	freezeClock(t)

	t.Run("crew at the outage", func(t *testing.T) {
		c := Crew{Latitude: 36.1627, Longitude: -86.7816, Status: StatusOnScene}
		outage := domain.OutageRecord{Latitude: 36.1627, Longitude: -86.7816}
		eta := ETA(c, outage)

		assert.Zero(t, eta.DistanceMiles)
		assert.Zero(t, eta.Minutes)
		assert.Equal(t, "arrived", eta.Confidence)
		assert.True(t, eta.Arrived)
		assert.Equal(t, "02:00 PM", eta.EstimatedArrival)
	})

	t.Run("en-route drive time rounds up", func(t *testing.T) {
		// Depot to East Nashville, roughly 3 miles.
		c := Crew{Latitude: DepotLatitude, Longitude: DepotLongitude, Status: StatusEnRoute}
		outage := domain.OutageRecord{Latitude: 36.1772, Longitude: -86.7275}
		eta := ETA(c, outage)

		assert.Equal(t, "high", eta.Confidence)
		assert.False(t, eta.Arrived)
		assert.Greater(t, eta.DistanceMiles, 2.0)
		assert.Less(t, eta.DistanceMiles, 4.0)
		assert.GreaterOrEqual(t, eta.Minutes, int(eta.DistanceMiles/avgSpeedMph*60))
	})

	t.Run("unknown status is medium confidence", func(t *testing.T) {
		eta := ETA(Crew{Status: StatusCompleted}, domain.OutageRecord{})
		assert.Equal(t, "medium", eta.Confidence)
	})
}

func TestFleetStats(t *testing.T) {
	outages := []domain.OutageRecord{
		{ID: "o1", Status: "Assigned"},
		{ID: "o2", Status: "Assigned"},
		{ID: "o3", Status: "Investigating"},
	}
	crews := []Crew{
		{ID: 100, Name: "Crew #100", Status: StatusEnRoute, Efficiency: 0.8},
		{ID: 101, Name: "Crew #101", Status: StatusOnScene, Efficiency: 0.9},
	}

	t.Run("counts and rollups", func(t *testing.T) {
		stats := FleetStats(crews, outages)

		assert.Equal(t, 2, stats.TotalCrews)
		assert.Equal(t, 1, stats.EnRoute)
		assert.Equal(t, 1, stats.OnScene)
		assert.Zero(t, stats.Completed)
		assert.Equal(t, 2, stats.AssignedOutages)
		assert.Equal(t, 10, stats.AvgResponseMin)
		assert.Equal(t, 85, stats.AvgEfficiency)
		assert.Equal(t, "Crew #101", stats.BusiestCrew)
		assert.Equal(t, 1, stats.BusiestLoad)
	})

	t.Run("empty fleet", func(t *testing.T) {
		stats := FleetStats(nil, outages)
		assert.Zero(t, stats.TotalCrews)
		assert.Equal(t, 78, stats.AvgEfficiency)
		assert.Equal(t, "N/A", stats.BusiestCrew)
		assert.Equal(t, 12, stats.AvgResponseMin)
	})
}

func TestTimeline(t *testing.T) {
	freezeClock(t)

	outage := domain.OutageRecord{
		StartTime: time.Date(2024, 7, 15, 13, 0, 0, 0, time.UTC),
	}
	c := Crew{Name: "Crew #100", Technicians: 3}

	t.Run("en-route crew shows report and assignment", func(t *testing.T) {
		c := c
		c.Status = StatusEnRoute
		events := Timeline(outage, c)

		require.Len(t, events, 2)
		assert.Equal(t, TimelineEvent{Time: "01:00 PM", Event: "Outage reported"}, events[0])
		assert.Equal(t, TimelineEvent{Time: "01:02 PM", Event: "Crew #100 assigned (3 technicians)"}, events[1])
	})

	t.Run("completed crew shows the full sequence", func(t *testing.T) {
		c := c
		c.Status = StatusCompleted
		events := Timeline(outage, c)

		require.Len(t, events, 4)
		assert.Equal(t, "01:10 PM", events[2].Time)
		assert.Equal(t, "Crew #100 arrived on scene", events[2].Event)
		assert.Equal(t, TimelineEvent{Time: "01:20 PM", Event: "Power restored"}, events[3])
	})
}
