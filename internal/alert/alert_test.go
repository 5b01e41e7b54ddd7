package alert

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"github.com/gridsight/outage-analytics/internal/domain"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		alert    Type
		data     Data
		expected string
	}{
		{
			"new outage",
			TypeNewOutage,
			Data{Area: "Downtown/Capitol Hill", ZipCode: "37201", Customers: 40000},
			"New outage detected: Downtown/Capitol Hill, 40,000 customers affected (37201)",
		},
		{
			"new outage without area",
			TypeNewOutage,
			Data{ZipCode: "37201", Customers: 12},
			"New outage detected: Your area, 12 customers affected (37201)",
		},
		{
			"power restored",
			TypePowerRestored,
			Data{ZipCode: "37206", Time: "3:45 PM"},
			"Power restored in your area 37206 at 3:45 PM",
		},
		{
			"crew assigned",
			TypeCrewAssigned,
			Data{Area: "East Nashville", ETA: "45 minutes"},
			"Crews assigned to your outage in East Nashville, expect power in 45 minutes",
		},
		{
			"eta update",
			TypeETAUpdate,
			Data{Area: "Inglewood", ETA: "6:00 PM"},
			"Updated ETA for Inglewood: Power expected by 6:00 PM",
		},
		{
			"unknown type falls back",
			Type("carrier_pigeon"),
			Data{},
			"Power outage notification from NES",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Message(tc.alert, tc.data))
		})
	}
}

func TestNewPayload(t *testing.T) {
	now := time.Date(2024, 7, 15, 14, 30, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(now))
	t.Cleanup(func() { domain.SetClock(nil) })

	data := Data{Area: "Downtown/Capitol Hill", ZipCode: "37201", Customers: 500}
	payload := NewPayload("+16155550100", TypeNewOutage, data)

	assert.Equal(t, "NES-OUTAGE", payload.From)
	assert.Equal(t, "+16155550100", payload.To)
	assert.Equal(t, Message(TypeNewOutage, data), payload.Body)
	assert.Equal(t, []string{"nes-outage", "new_outage"}, payload.Tags)
	assert.Equal(t, "2024-07-15T14:30:00.000Z", payload.Timestamp)
	assert.Equal(t, TypeNewOutage, payload.AlertType)
	assert.Equal(t, "37201", payload.ZipCode)
	assert.Equal(t, data, payload.Meta)
	assert.NotNil(t, payload.MediaURL) // serializes as [], not null
	assert.Empty(t, payload.MediaURL)

	_, err := uuid.Parse(payload.ID)
	assert.NoError(t, err)
}

func TestFromRecord(t *testing.T) {
	rec := domain.OutageRecord{ZipCode: "37201", NumPeople: 1200}
	data := FromRecord(rec, "Downtown/Capitol Hill")

	assert.Equal(t, "Downtown/Capitol Hill", data.Area)
	assert.Equal(t, "37201", data.ZipCode)
	assert.Equal(t, 1200, data.Customers)
}

func TestCarriers(t *testing.T) {
	assert.Equal(t, "AT&T", Carriers["ATT"])
	assert.Len(t, Carriers, 5)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", formatCount(0))
	assert.Equal(t, "999", formatCount(999))
	assert.Equal(t, "1,000", formatCount(1000))
	assert.Equal(t, "1,234,567", formatCount(1234567))
}
