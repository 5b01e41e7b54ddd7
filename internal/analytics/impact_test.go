package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpact(t *testing.T) {
	freezeClock(t)

	t.Run("single industry reference case", func(t *testing.T) {
		result := Impact(1000, 2, []string{"healthcare"})

		// base 1000 * 45 * 2 = 90000, multiplier (1 + 2.5) / 2 = 1.75
		assert.Equal(t, 90000, result.BaseCost)
		assert.Equal(t, 157500, result.TotalCost)
		assert.Equal(t, "$0.2M", result.FormattedCost)
		assert.Equal(t, 80, result.EstimatedFamilies)
		assert.InDelta(t, 3500, result.EstimatedPeople, 1e-9)
		assert.Equal(t, 1.0, result.PeakHourMultiplier)

		require.Contains(t, result.Breakdown, "healthcare")
		hc := result.Breakdown["healthcare"]
		assert.Equal(t, "Healthcare", hc.Name)
		assert.Equal(t, 2.5, hc.Multiplier)
		assert.Equal(t, 450, hc.HourlyRate)
		assert.Equal(t, 225000, hc.EstimatedCost)
	})

	t.Run("no industries defaults to residential", func(t *testing.T) {
		result := Impact(1000, 2, nil)

		assert.Equal(t, []string{"residential"}, result.IndustriesAffected)
		// multiplier (1 + 1.0) / 2 = 1.0
		assert.Equal(t, 90000, result.TotalCost)
	})

	t.Run("multiplier fold is order dependent", func(t *testing.T) {
		forward := Impact(1000, 2, []string{"healthcare", "education"})
		reverse := Impact(1000, 2, []string{"education", "healthcare"})

		// ((1+2.5)/2 + 0.8)/2 = 1.275 vs ((1+0.8)/2 + 2.5)/2 = 1.7
		assert.Equal(t, 114750, forward.TotalCost)
		assert.Equal(t, 153000, reverse.TotalCost)
	})

	t.Run("industry shares split the base cost", func(t *testing.T) {
		result := Impact(1000, 2, []string{"retail", "telecom"})

		retail := result.Breakdown["retail"]
		telecom := result.Breakdown["telecom"]
		assert.Equal(t, 54000, retail.EstimatedCost)  // 90000 * 0.5 * 1.2
		assert.Equal(t, 81000, telecom.EstimatedCost) // 90000 * 0.5 * 1.8
	})

	t.Run("unknown industries are skipped", func(t *testing.T) {
		result := Impact(1000, 2, []string{"blockchain", "healthcare"})

		assert.NotContains(t, result.Breakdown, "blockchain")
		assert.Contains(t, result.Breakdown, "healthcare")
		// Skipped entries still count toward the share denominator.
		assert.Equal(t, 112500, result.Breakdown["healthcare"].EstimatedCost)
	})

	t.Run("industry names match case-insensitively", func(t *testing.T) {
		result := Impact(1000, 2, []string{"Healthcare"})
		assert.Contains(t, result.Breakdown, "Healthcare")
		assert.Equal(t, 157500, result.TotalCost)
	})

	t.Run("large outage formats in millions", func(t *testing.T) {
		result := Impact(50000, 8, []string{"residential"})
		// base 50000 * 45 * 8 = 18M, multiplier 1.0
		assert.Equal(t, "$18.0M", result.FormattedCost)
	})
}

func TestImpactSummary(t *testing.T) {
	freezeClock(t)

	result := Impact(1000, 2, []string{"healthcare"})
	summary := ImpactSummary(result)

	assert.Equal(t,
		"This 2.0hr outage will cost Nashville $0.2M | 80 families (~3,500 people) affected",
		summary)
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{0, "0"},
		{80, "80"},
		{3500, "3,500"},
		{1234567, "1,234,567"},
		{3500.5, "3,500.5"},
		{1.96, "2"},
		{999.97, "1,000"},
		{7.25, "7.3"},
		{-42000, "-42,000"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, groupThousands(tc.in), "input %v", tc.in)
	}
}
