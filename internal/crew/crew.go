// Package crew models repair crew dispatch: simulated fleet positions,
// drive-time ETAs, fleet statistics, and per-outage restoration timelines.
package crew

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gridsight/outage-analytics/internal/domain"
)

// Depot is the main dispatch office in downtown Nashville.
const (
	DepotLatitude  = 36.1627
	DepotLongitude = -86.7816
)

// Crew status values.
const (
	StatusEnRoute   = "en_route"
	StatusOnScene   = "on_scene"
	StatusCompleted = "completed"
)

// avgSpeedMph is the assumed average crew driving speed, accounting for
// traffic and navigation.
const avgSpeedMph = 25

// earthRadiusMiles is the haversine radius.
const earthRadiusMiles = 3959

// Crew is one fleet unit and its current assignment.
type Crew struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Technicians int       `json:"technicians"`
	OutageID    string    `json:"assigned_outage_id"`
	OutageZip   string    `json:"assigned_outage_location"`
	Status      string    `json:"status"`
	LastUpdated time.Time `json:"last_updated"`
	Efficiency  float64   `json:"efficiency"` // first-visit resolution rate, 0.7-1.0
}

// Generate simulates fleet positions for the outages currently in the
// Assigned state. Density is crews per assigned outage (0.8 by default in
// callers). Crews are placed 30-80% of the way from the depot to their
// outage. Returns nil when nothing is assigned.
func Generate(outages []domain.OutageRecord, density float64, rng *rand.Rand) []Crew {
	var assigned []domain.OutageRecord
	for _, o := range outages {
		if o.Status == "Assigned" {
			assigned = append(assigned, o)
		}
	}
	if len(assigned) == 0 {
		return nil
	}

	numCrews := int(math.Ceil(float64(len(assigned)) * density))
	if numCrews < 1 {
		numCrews = 1
	}

	crews := make([]Crew, 0, numCrews)
	for i := 0; i < numCrews; i++ {
		target := assigned[i%len(assigned)]
		progress := 0.3 + rng.Float64()*0.5

		crews = append(crews, Crew{
			ID:          100 + i,
			Name:        fmt.Sprintf("Crew #%d", 100+i),
			Latitude:    DepotLatitude + (target.Latitude-DepotLatitude)*progress,
			Longitude:   DepotLongitude + (target.Longitude-DepotLongitude)*progress,
			Technicians: 2 + rng.Intn(3),
			OutageID:    target.ID,
			OutageZip:   target.ZipCode,
			Status:      StatusEnRoute,
			LastUpdated: domain.Now(),
			Efficiency:  0.7 + rng.Float64()*0.3,
		})
	}
	return crews
}

// ETAInfo is a drive-time estimate from a crew to its outage.
type ETAInfo struct {
	DistanceMiles    float64 `json:"distance_miles"`
	Minutes          int     `json:"eta_minutes"`
	Confidence       string  `json:"confidence"` // "arrived", "high", or "medium"
	Arrived          bool    `json:"arrived"`
	EstimatedArrival string  `json:"estimated_arrival"`
}

// ETA estimates arrival from the crew's position to the outage using
// haversine distance at the average fleet speed, minutes rounded up.
func ETA(c Crew, outage domain.OutageRecord) ETAInfo {
	distance := haversineMiles(c.Latitude, c.Longitude, outage.Latitude, outage.Longitude)
	minutes := int(math.Ceil(distance / avgSpeedMph * 60))

	confidence := "medium"
	switch c.Status {
	case StatusOnScene:
		confidence = "arrived"
	case StatusEnRoute:
		confidence = "high"
	}

	return ETAInfo{
		DistanceMiles:    math.Round(distance*10) / 10,
		Minutes:          minutes,
		Confidence:       confidence,
		Arrived:          c.Status == StatusOnScene,
		EstimatedArrival: clockLabel(domain.Now().Add(time.Duration(minutes) * time.Minute)),
	}
}

func haversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// Stats is a fleet-level rollup.
type Stats struct {
	TotalCrews      int    `json:"total_crews"`
	OnScene         int    `json:"crews_on_scene"`
	EnRoute         int    `json:"crews_en_route"`
	Completed       int    `json:"crews_completed"`
	AssignedOutages int    `json:"assigned_outages"`
	AvgResponseMin  int    `json:"avg_response_time"`
	AvgEfficiency   int    `json:"avg_efficiency"` // whole percent
	BusiestCrew     string `json:"busiest_crew"`
	BusiestLoad     int    `json:"busiest_crew_assignments"`
}

// FleetStats summarizes the fleet against the current outage list. Response
// time is a fixed estimate per fleet state rather than a measured value.
func FleetStats(crews []Crew, outages []domain.OutageRecord) Stats {
	stats := Stats{TotalCrews: len(crews), BusiestCrew: "N/A"}

	for _, o := range outages {
		if o.Status == "Assigned" {
			stats.AssignedOutages++
		}
	}

	var efficiencySum float64
	busiestID := -1
	for _, c := range crews {
		switch c.Status {
		case StatusOnScene:
			stats.OnScene++
		case StatusEnRoute:
			stats.EnRoute++
		case StatusCompleted:
			stats.Completed++
		}
		efficiencySum += c.Efficiency
		if c.ID > busiestID {
			busiestID = c.ID
			stats.BusiestCrew = c.Name
		}
	}

	switch {
	case stats.EnRoute > 0:
		stats.AvgResponseMin = 10
	case stats.OnScene > 0:
		stats.AvgResponseMin = 20
	default:
		stats.AvgResponseMin = 12
	}

	if len(crews) > 0 {
		stats.AvgEfficiency = int(math.Round(efficiencySum / float64(len(crews)) * 100))
		stats.BusiestLoad = (stats.AssignedOutages + len(crews) - 1) / len(crews)
	} else {
		stats.AvgEfficiency = 78
	}
	return stats
}

// TimelineEvent is one step in an outage's restoration sequence.
type TimelineEvent struct {
	Time  string `json:"time"`
	Event string `json:"event"`
}

// Timeline reconstructs the restoration sequence for an outage and its
// assigned crew: report, assignment two minutes in, arrival at ten, and
// restoration at twenty once the crew completes.
func Timeline(outage domain.OutageRecord, c Crew) []TimelineEvent {
	start := outage.StartTime
	events := []TimelineEvent{
		{Time: clockLabel(start), Event: "Outage reported"},
	}

	if domain.Now().After(start) {
		events = append(events, TimelineEvent{
			Time:  clockLabel(start.Add(2 * time.Minute)),
			Event: fmt.Sprintf("%s assigned (%d technicians)", c.Name, c.Technicians),
		})
	}
	if c.Status == StatusOnScene || c.Status == StatusCompleted {
		events = append(events, TimelineEvent{
			Time:  clockLabel(start.Add(10 * time.Minute)),
			Event: fmt.Sprintf("%s arrived on scene", c.Name),
		})
	}
	if c.Status == StatusCompleted {
		events = append(events, TimelineEvent{
			Time:  clockLabel(start.Add(20 * time.Minute)),
			Event: "Power restored",
		})
	}
	return events
}

// clockLabel renders a 12-hour zero-padded clock reading.
func clockLabel(t time.Time) string {
	return t.Format("03:04 PM")
}
