package analytics

import (
	"math"
	"sort"

	"github.com/gridsight/outage-analytics/internal/domain"
	"github.com/gridsight/outage-analytics/internal/geo"
)

// Similarity component weights. They sum to 1.0, so the weighted sum is
// already bounded to [0,1] without further capping.
const (
	similarityLocationWeight = 0.25
	similarityTimeWeight     = 0.20
	similarityCustomerWeight = 0.30
	similarityCauseWeight    = 0.25
)

// OutageSimilarity scores how alike two outages are on a 0-1 scale from four
// independently normalized sub-scores: location (exact zip, or within 5
// miles), start hour proximity, customer-count ratio, and cause. An outage
// compared against an identical clone scores exactly 1.0.
func OutageSimilarity(a, b domain.OutageRecord) float64 {
	locationMatch := 0.0
	switch {
	case a.ZipCode == b.ZipCode:
		locationMatch = 1
	case geo.ZipDistanceMiles(a.ZipCode, b.ZipCode) < 5:
		locationMatch = 0.5
	}

	hourDiff := absInt(a.StartTime.Hour() - b.StartTime.Hour())
	timeMatch := 0.0
	switch {
	case hourDiff <= 2:
		timeMatch = 1
	case hourDiff <= 4:
		timeMatch = 0.5
	}

	// Zero or missing counts push the ratio outside both bands, landing on
	// the weakest match rather than erroring.
	customerRatio := float64(a.NumPeople) / float64(b.NumPeople)
	customerMatch := 0.2
	switch {
	case customerRatio >= 0.8 && customerRatio <= 1.2:
		customerMatch = 1
	case customerRatio >= 0.5 && customerRatio <= 1.5:
		customerMatch = 0.6
	}

	causeMatch := 0.2
	if a.Cause == b.Cause {
		causeMatch = 1
	}

	return locationMatch*similarityLocationWeight +
		timeMatch*similarityTimeWeight +
		customerMatch*similarityCustomerWeight +
		causeMatch*similarityCauseWeight
}

// SimilarOutage pairs a historical record with its similarity to the probe.
type SimilarOutage struct {
	Record     domain.OutageRecord `json:"record"`
	Similarity float64             `json:"similarity"`
	Confidence int                 `json:"confidence"` // similarity as a whole percentage
}

// FindSimilarOutages ranks history by similarity to the current outage,
// descending, truncated to limit. The current record itself is excluded by
// ID. Equal similarities keep history order.
func FindSimilarOutages(current domain.OutageRecord, history []domain.OutageRecord, limit int) []SimilarOutage {
	if len(history) == 0 {
		return nil
	}

	matches := make([]SimilarOutage, 0, len(history))
	for _, rec := range history {
		if current.ID != "" && rec.ID == current.ID {
			continue
		}
		similarity := OutageSimilarity(current, rec)
		matches = append(matches, SimilarOutage{
			Record:     rec,
			Similarity: similarity,
			Confidence: int(math.Round(similarity * 100)),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
