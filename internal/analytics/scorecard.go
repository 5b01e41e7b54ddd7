package analytics

import (
	"sort"
	"time"

	"github.com/gridsight/outage-analytics/internal/domain"
)

// Scorecard is one neighborhood's aggregate plus its safety score.
type Scorecard struct {
	domain.AreaStats
	LastOutage time.Time    `json:"last_outage,omitzero"`
	Safety     SafetyResult `json:"scorecard"`
}

// Scorecards builds the complete neighborhood scorecard list, sorted by
// safety score descending. Equal scores keep first-seen history order.
func Scorecards(history []domain.OutageRecord) []Scorecard {
	areas := groupAreasOrdered(history)

	lastByArea := make(map[string]time.Time, len(areas))
	for _, rec := range history {
		key := rec.ZipCode
		if key == "" {
			key = UnknownAreaKey
		}
		if rec.StartTime.After(lastByArea[key]) {
			lastByArea[key] = rec.StartTime
		}
	}

	cards := make([]Scorecard, len(areas))
	for i, a := range areas {
		zip := a.Area
		if zip == UnknownAreaKey {
			zip = ""
		}
		cards[i] = Scorecard{
			AreaStats:  *a,
			LastOutage: lastByArea[a.Area],
			Safety:     NeighborhoodSafety(*a, history, zip),
		}
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Safety.Score > cards[j].Safety.Score
	})
	return cards
}
