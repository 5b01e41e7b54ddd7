// Package alert builds outbound notification payloads for outage events.
// Payloads are shaped for the SMS gateway backend; publication happens over
// the alert topic, the gateway fans out to subscribers.
package alert

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gridsight/outage-analytics/internal/domain"
)

// Type identifies the notification template to render.
type Type string

const (
	TypeNewOutage     Type = "new_outage"
	TypePowerRestored Type = "power_restored"
	TypeCrewAssigned  Type = "crew_assigned"
	TypeETAUpdate     Type = "eta_update"
)

// defaultMessage is sent when a template has no match for the alert type.
const defaultMessage = "Power outage notification from NES"

// sender is the gateway-registered origin identity.
const sender = "NES-OUTAGE"

// Carriers maps carrier codes accepted by the gateway to display names.
var Carriers = map[string]string{
	"ATT":     "AT&T",
	"TMOBILE": "T-Mobile",
	"VERIZON": "Verizon",
	"SPRINT":  "Sprint",
	"OTHER":   "Other",
}

// Data carries the template fields. Unused fields are ignored by templates
// that do not reference them.
type Data struct {
	Area      string `json:"area"`
	ZipCode   string `json:"zip_code"`
	Customers int    `json:"customers_affected"`
	Time      string `json:"time,omitempty"` // restoration time, pre-formatted
	ETA       string `json:"eta,omitempty"`
}

// Message renders the notification body for the given alert type.
func Message(t Type, d Data) string {
	area := d.Area
	if area == "" {
		area = "Your area"
	}

	switch t {
	case TypeNewOutage:
		return fmt.Sprintf("New outage detected: %s, %s customers affected (%s)",
			area, formatCount(d.Customers), d.ZipCode)
	case TypePowerRestored:
		return fmt.Sprintf("Power restored in your area %s at %s", d.ZipCode, d.Time)
	case TypeCrewAssigned:
		return fmt.Sprintf("Crews assigned to your outage in %s, expect power in %s", area, d.ETA)
	case TypeETAUpdate:
		return fmt.Sprintf("Updated ETA for %s: Power expected by %s", area, d.ETA)
	default:
		return defaultMessage
	}
}

// Payload is the gateway API request body for one notification.
type Payload struct {
	ID        string   `json:"id"`
	From      string   `json:"From"`
	To        string   `json:"To"`
	Body      string   `json:"Body"`
	MediaURL  []string `json:"MediaUrl"`
	Tags      []string `json:"Tags"`
	Timestamp string   `json:"Timestamp"`
	AlertType Type     `json:"AlertType"`
	Area      string   `json:"Area"`
	ZipCode   string   `json:"ZipCode"`
	Meta      Data     `json:"Meta"`
}

// NewPayload assembles a gateway payload for one recipient.
func NewPayload(to string, t Type, d Data) Payload {
	return Payload{
		ID:        uuid.NewString(),
		From:      sender,
		To:        to,
		Body:      Message(t, d),
		MediaURL:  []string{},
		Tags:      []string{"nes-outage", string(t)},
		Timestamp: domain.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		AlertType: t,
		Area:      d.Area,
		ZipCode:   d.ZipCode,
		Meta:      d,
	}
}

// FromRecord builds new-outage alert data from a parsed record, resolving
// the neighborhood name through the area field the caller supplies.
func FromRecord(rec domain.OutageRecord, area string) Data {
	return Data{
		Area:      area,
		ZipCode:   rec.ZipCode,
		Customers: rec.NumPeople,
	}
}

// formatCount renders an integer with comma grouping.
func formatCount(v int) string {
	neg := v < 0
	if neg {
		v = -v
	}
	digits := fmt.Sprintf("%d", v)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
