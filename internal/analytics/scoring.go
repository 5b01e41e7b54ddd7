package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gridsight/outage-analytics/internal/domain"
)

// Rating colors shared by every scorecard surface.
const (
	ColorGreen  = "#10B981"
	ColorAmber  = "#F59E0B"
	ColorOrange = "#F97316"
	ColorRed    = "#EF4444"
)

// PenaltyBreakdown itemizes the deductions behind a reliability score.
// A score without its breakdown is not a complete result.
type PenaltyBreakdown struct {
	Frequency float64 `json:"frequency_penalty"`
	Duration  float64 `json:"duration_penalty"`
	Impact    float64 `json:"impact_penalty"`
}

// ReliabilityResult is a 0-100 area reliability score, higher is better.
type ReliabilityResult struct {
	Score      int              `json:"score"`
	Rating     string           `json:"rating"`
	Color      string           `json:"color"`
	Components PenaltyBreakdown `json:"components"`
}

// Reliability scores an area from its aggregate statistics. An area with no
// outages is perfect. Each penalty is capped independently: frequency at 50,
// duration at 30, impact at 20. The rating bands are strict greater-than:
// a score of exactly 80 is Fair, exactly 60 is Poor.
func Reliability(stats domain.AreaStats) ReliabilityResult {
	if stats.Outages == 0 {
		return ReliabilityResult{Score: 100, Rating: "Excellent", Color: ColorGreen}
	}

	frequencyPenalty := math.Min(float64(stats.Outages)*5, 50)
	durationPenalty := math.Min(stats.AvgDuration*2, 30)
	impactPenalty := math.Min(float64(stats.TotalAffected)/100, 20)

	score := int(math.Round(math.Max(0, 100-frequencyPenalty-durationPenalty-impactPenalty)))

	rating, color := "Poor", ColorRed
	switch {
	case score > 80:
		rating, color = "Excellent", ColorGreen
	case score > 60:
		rating, color = "Fair", ColorAmber
	}

	return ReliabilityResult{
		Score:  score,
		Rating: rating,
		Color:  color,
		Components: PenaltyBreakdown{
			Frequency: frequencyPenalty,
			Duration:  durationPenalty,
			Impact:    impactPenalty,
		},
	}
}

// SeverityComponents itemizes the additive parts of a severity score.
type SeverityComponents struct {
	Customers float64 `json:"customers"`
	Duration  float64 `json:"duration"`
	Trend     float64 `json:"trend"`
	TimeOfDay float64 `json:"time_of_day"`
}

// SeverityResult is a 0-10 per-incident urgency score.
type SeverityResult struct {
	Score      float64            `json:"score"`
	Severity   string             `json:"severity"`
	Badge      string             `json:"badge"`
	Color      string             `json:"color"`
	Components SeverityComponents `json:"components"`
	Reasoning  string             `json:"reasoning"`
}

// Severity ranks one outage on a 0-10 scale from four independently capped
// components: customers affected (0-5), expected duration (0-2), reported
// trend (0-1), and time of day (0-2). When the record has no ETA the expected
// duration defaults to 2 hours.
func Severity(outage domain.OutageRecord) SeverityResult {
	components := SeverityComponents{
		Customers: math.Min(float64(outage.NumPeople)/50000, 5),
		Trend:     trendComponent(outage.Trend),
		TimeOfDay: timeOfDayComponent(outage.StartTime),
	}

	estimatedHours := 2.0
	if !outage.EstimatedETA.IsZero() {
		estimatedHours = outage.EstimatedETA.Sub(outage.StartTime).Hours()
	}
	components.Duration = math.Min((estimatedHours/6)*2, 2)

	score := components.Customers + components.Duration + components.Trend + components.TimeOfDay
	score = math.Min(score, 10)

	var severity string
	switch {
	case score >= 7:
		severity = "SEVERE"
	case score >= 5:
		severity = "HIGH"
	case score >= 3:
		severity = "MODERATE"
	default:
		severity = "LOW"
	}

	return SeverityResult{
		Score:      round1(score),
		Severity:   severity,
		Badge:      severityBadge(score),
		Color:      SeverityColor(score),
		Components: components,
		Reasoning:  severityReasoning(components, outage),
	}
}

// severityBadge renders the compact status-card label. The label floor is
// MODERATE: unlike the severity field, scores below 3 do not read LOW here.
func severityBadge(score float64) string {
	label := "MODERATE"
	switch {
	case score >= 7:
		label = "SEVERE"
	case score >= 5:
		label = "HIGH"
	}
	return fmt.Sprintf("⚠️ %d/10 %s", int(math.Round(score)), label)
}

// SeverityColor maps a 0-10 severity score to its badge color.
func SeverityColor(score float64) string {
	switch {
	case score >= 7:
		return ColorRed
	case score >= 5:
		return ColorOrange
	case score >= 3:
		return ColorAmber
	default:
		return ColorGreen
	}
}

func trendComponent(trend string) float64 {
	switch trend {
	case "worsening":
		return 1.0
	case "stable":
		return 0.3
	default: // "improving" or unreported
		return 0
	}
}

func timeOfDayComponent(start time.Time) float64 {
	multiplier := TimeOfDayMultiplier(start)
	switch {
	case multiplier > 1.5:
		return 2
	case multiplier > 1:
		return 1.5
	default:
		return 0.5
	}
}

// severityReasoning builds the human-readable explanation shown next to a
// severity badge.
func severityReasoning(c SeverityComponents, outage domain.OutageRecord) string {
	var reasons []string
	if c.Customers > 3 {
		reasons = append(reasons, "Large number of customers affected")
	}
	if c.Duration > 1.5 {
		reasons = append(reasons, "Extended duration expected")
	}
	if c.Trend > 0.5 {
		reasons = append(reasons, fmt.Sprintf("Situation is %s", outage.Trend))
	}
	if c.TimeOfDay > 1 {
		reasons = append(reasons, "Occurred during peak hours")
	}
	if len(reasons) == 0 {
		return "Low impact incident"
	}
	return strings.Join(reasons, " + ")
}

// SafetyComponents itemizes the penalties behind a neighborhood safety score.
type SafetyComponents struct {
	FrequencyPenalty int `json:"frequency_penalty"`
	DurationPenalty  int `json:"duration_penalty"`
	RecentPenalty    int `json:"recent_penalty"`
}

// SafetyResult is a 0-100 neighborhood safety score, higher is better.
type SafetyResult struct {
	Score      int              `json:"score"`
	Rating     string           `json:"rating"`
	Color      string           `json:"color"`
	Components SafetyComponents `json:"components"`
}

// NeighborhoodSafety scores an area with three independently capped
// penalties: frequency (0-40), average duration (0-35, scaled against an
// 8-hour ceiling), and incidents in the last 30 days (0-25, 5 points each).
// The recency penalty needs a zip to filter on and is zero without one.
//
// Unlike Reliability, the rating bands here are inclusive: a score of
// exactly 80 is Excellent and exactly 60 is Fair. The asymmetry is carried
// over from the original product.
func NeighborhoodSafety(stats domain.AreaStats, history []domain.OutageRecord, zip string) SafetyResult {
	frequencyPenalty := math.Min(float64(stats.Outages)*3, 40)

	avgDurationHours := stats.AvgDuration
	if avgDurationHours == 0 && stats.Outages > 0 {
		avgDurationHours = stats.TotalDuration / float64(stats.Outages)
	}
	durationPenalty := math.Min((avgDurationHours/8)*35, 35)

	recentIncidents := 0
	if len(history) > 0 && zip != "" {
		cutoff := domain.Now().Add(-30 * 24 * time.Hour)
		for _, rec := range history {
			if rec.ZipCode == zip && rec.StartTime.After(cutoff) {
				recentIncidents++
			}
		}
	}
	recentPenalty := math.Min(float64(recentIncidents)*5, 25)

	score := int(math.Round(math.Max(0, 100-frequencyPenalty-durationPenalty-recentPenalty)))

	rating, color := "Poor", ColorRed
	switch {
	case score >= 80:
		rating, color = "Excellent", ColorGreen
	case score >= 60:
		rating, color = "Fair", ColorAmber
	}

	return SafetyResult{
		Score:  score,
		Rating: rating,
		Color:  color,
		Components: SafetyComponents{
			FrequencyPenalty: int(math.Round(frequencyPenalty)),
			DurationPenalty:  int(math.Round(durationPenalty)),
			RecentPenalty:    int(math.Round(recentPenalty)),
		},
	}
}

// TimeOfDayMultiplier returns the cost weighting for a point in time:
// 2.0 during weekday peak (14:00-16:00), 0.6 overnight (23:00-06:00,
// wrapping midnight), 1.0 otherwise.
func TimeOfDayMultiplier(t time.Time) float64 {
	hour := t.Hour()
	weekday := t.Weekday()

	if hour >= 14 && hour < 16 && weekday >= time.Monday && weekday <= time.Friday {
		return 2.0
	}
	if hour >= 23 || hour < 6 {
		return 0.6
	}
	return 1.0
}
