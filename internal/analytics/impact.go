package analytics

import (
	"fmt"
	"math"
	"strings"

	"github.com/gridsight/outage-analytics/internal/domain"
)

// avgIncomePerHour is the Nashville average household hourly impact in USD.
const avgIncomePerHour = 45

// Family estimation factors: roughly 8% of feed "customers" are businesses,
// and the average household is 3.5 people.
const (
	familyFactor  = 0.08
	householdSize = 3.5
)

// Industry describes one industry segment's cost weighting.
type Industry struct {
	Name     string
	Weight   float64
	Examples []string
}

// Industries defines the recognized industry segments and their cost
// multipliers. Unrecognized names are silently skipped by Impact.
var Industries = map[string]Industry{
	"healthcare":     {"Healthcare", 2.5, []string{"hospitals", "clinics", "emergency"}},
	"financial":      {"Financial Services", 2.0, []string{"banks", "credit_unions", "atms"}},
	"retail":         {"Retail & Commerce", 1.2, []string{"stores", "malls", "gas_stations"}},
	"manufacturing":  {"Manufacturing", 2.3, []string{"factories", "plants", "warehouses"}},
	"telecom":        {"Telecommunications", 1.8, []string{"cell_towers", "internet_hubs"}},
	"transportation": {"Transportation", 1.5, []string{"traffic_lights", "buses", "trains"}},
	"residential":    {"Residential", 1.0, []string{"homes", "apartments"}},
	"education":      {"Education", 0.8, []string{"schools", "universities"}},
}

// HourlyImpactCost is the average hourly cost impact per industry in USD,
// surfaced in impact breakdowns as reference data.
var HourlyImpactCost = map[string]int{
	"healthcare":     450,
	"financial":      380,
	"retail":         185,
	"manufacturing":  420,
	"telecom":        320,
	"transportation": 280,
	"residential":    35,
	"education":      90,
}

// IndustryCost is one industry's share of an impact estimate.
type IndustryCost struct {
	Name          string  `json:"name"`
	Multiplier    float64 `json:"multiplier"`
	HourlyRate    int     `json:"hourly_rate"`
	EstimatedCost int     `json:"estimated_cost"`
}

// ImpactResult is the full economic impact breakdown for one outage.
type ImpactResult struct {
	TotalCost          int                     `json:"total_cost"`
	BaseCost           int                     `json:"base_cost"`
	IndustriesAffected []string                `json:"industries_affected"`
	Breakdown          map[string]IndustryCost `json:"industry_breakdown"`
	AffectedCustomers  int                     `json:"affected_customers"`
	DurationHours      float64                 `json:"duration_hours"`
	EstimatedFamilies  int                     `json:"estimated_families"`
	EstimatedPeople    float64                 `json:"estimated_people"`
	FormattedCost      string                  `json:"formatted_cost"`
	PeakHourMultiplier float64                 `json:"peak_hour_multiplier"`
}

// Impact estimates the economic cost of an outage. Base cost is customers x
// $45 x hours. Each recognized industry takes an equal share of the base cost
// scaled by its weight.
//
// The overall industry multiplier is a running average: it starts at 1 and is
// averaged with each matched industry's weight in input order, so the result
// is order-dependent. That fold is almost certainly an accident of the
// original product, but its totals are user-visible and must be reproduced
// exactly; do not replace it with a true mean.
func Impact(affectedCustomers int, durationHours float64, industries []string) ImpactResult {
	if len(industries) == 0 {
		industries = []string{"residential"}
	}

	baseCost := float64(affectedCustomers) * avgIncomePerHour * durationHours

	industryMultiplier := 1.0
	breakdown := make(map[string]IndustryCost)
	for _, industry := range industries {
		key := strings.ToLower(industry)
		data, ok := Industries[key]
		if !ok {
			continue
		}
		share := 1 / float64(len(industries))
		breakdown[industry] = IndustryCost{
			Name:          data.Name,
			Multiplier:    data.Weight,
			HourlyRate:    HourlyImpactCost[key],
			EstimatedCost: int(math.Round(baseCost * share * data.Weight)),
		}
		industryMultiplier = (industryMultiplier + data.Weight) / 2
	}

	totalCost := int(math.Round(baseCost * industryMultiplier))

	return ImpactResult{
		TotalCost:          totalCost,
		BaseCost:           int(math.Round(baseCost)),
		IndustriesAffected: industries,
		Breakdown:          breakdown,
		AffectedCustomers:  affectedCustomers,
		DurationHours:      durationHours,
		EstimatedFamilies:  int(math.Round(float64(affectedCustomers) * familyFactor)),
		EstimatedPeople:    float64(affectedCustomers) * householdSize,
		FormattedCost:      fmt.Sprintf("$%.1fM", float64(totalCost)/1_000_000),
		PeakHourMultiplier: TimeOfDayMultiplier(domain.Now()),
	}
}

// ImpactSummary renders the one-line impact string shown on status cards.
func ImpactSummary(impact ImpactResult) string {
	return fmt.Sprintf("This %.1fhr outage will cost Nashville %s | %s families (~%s people) affected",
		impact.DurationHours,
		impact.FormattedCost,
		groupThousands(float64(impact.EstimatedFamilies)),
		groupThousands(impact.EstimatedPeople),
	)
}

// groupThousands formats a number with comma separators, dropping a zero
// fractional part. Rounding happens before the whole/fraction split so a
// fraction that rounds up to 1.0 carries into the whole part.
func groupThousands(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	v = math.Round(v*10) / 10

	whole := int64(v)
	frac := v - float64(whole)

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := b.String()
	if frac >= 0.05 {
		out += strings.TrimPrefix(fmt.Sprintf("%.1f", frac), "0")
	}
	if neg {
		out = "-" + out
	}
	return out
}
