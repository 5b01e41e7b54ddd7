package domain

import (
	"context"
	"time"
)

// RawFeedRecord represents the flat JSON structure produced by the collector.
// Time fields are Unix epoch milliseconds, matching the upstream feed.
type RawFeedRecord struct {
	ID              string  `json:"id,omitempty"`
	ZipCode         string  `json:"zipCode,omitempty"`
	StartTime       int64   `json:"startTime"`
	LastUpdatedTime int64   `json:"lastUpdatedTime"`
	NumPeople       int     `json:"numPeople"`
	Status          string  `json:"status,omitempty"`
	Cause           string  `json:"cause,omitempty"`
	Trend           string  `json:"trend,omitempty"`
	EstimatedETA    int64   `json:"estimated_eta,omitempty"`
	Latitude        float64 `json:"latitude,omitempty"`
	Longitude       float64 `json:"longitude,omitempty"`
}

// RawEvent represents an unprocessed message from the raw outage topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutageRecord is the domain-rich representation after parsing. Fields are
// value semantics only: records have no identity beyond their fields and are
// never mutated after creation.
type OutageRecord struct {
	ID              string    `json:"id"`
	ZipCode         string    `json:"zip_code,omitempty"`
	StartTime       time.Time `json:"start_time"`
	LastUpdatedTime time.Time `json:"last_updated_time"`
	NumPeople       int       `json:"num_people"`
	Status          string    `json:"status,omitempty"`
	Cause           string    `json:"cause,omitempty"`
	Trend           string    `json:"trend,omitempty"`
	EstimatedETA    time.Time `json:"estimated_eta,omitzero"`
	Latitude        float64   `json:"latitude,omitempty"`
	Longitude       float64   `json:"longitude,omitempty"`

	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}

// DurationHours returns the outage duration in hours. Records constructed by
// ParseRawEvent always satisfy LastUpdatedTime >= StartTime; for anything
// hand-built the result is clamped at zero so a malformed record can never
// produce a negative penalty downstream.
func (r OutageRecord) DurationHours() float64 {
	d := r.LastUpdatedTime.Sub(r.StartTime).Hours()
	if d < 0 {
		return 0
	}
	return d
}

// HasCoordinates reports whether the record carries a usable lat/lon pair.
func (r OutageRecord) HasCoordinates() bool {
	return r.Latitude != 0 || r.Longitude != 0
}

// AreaStats is a derived aggregate over a filtered or grouped subset of
// records. Always recomputed per call, never persisted.
type AreaStats struct {
	Area          string  `json:"area"` // zip code or "unknown"
	Name          string  `json:"name,omitempty"`
	Outages       int     `json:"outages"`
	TotalDuration float64 `json:"total_duration"` // hours
	TotalAffected int     `json:"total_affected"`
	AvgDuration   float64 `json:"avg_duration"` // hours
	AvgAffected   int     `json:"avg_affected"`
}

// Geocoder resolves coordinates to a postal code. Implementations live in the
// adapter layer; the domain only depends on this interface.
type Geocoder interface {
	// ReverseGeocode converts coordinates to a five-digit postal code.
	// An empty string with nil error means the provider had no answer.
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}
