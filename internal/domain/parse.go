package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Validation errors returned by ParseRawEvent. Malformed records are rejected
// at ingestion rather than silently coerced; the ingest loop skips them and
// counts the failure.
var (
	ErrMissingStartTime  = errors.New("record has no start time")
	ErrNegativeDuration  = errors.New("record last-updated time precedes start time")
	ErrNegativeCustomers = errors.New("record has negative customer count")
)

// ParseRawEvent deserializes a RawEvent's value into an OutageRecord.
// It expects the flat epoch-millisecond JSON produced by the collector.
func ParseRawEvent(raw RawEvent) (OutageRecord, error) {
	var rec RawFeedRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return OutageRecord{}, fmt.Errorf("parse raw event: %w", err)
	}

	if rec.StartTime == 0 {
		return OutageRecord{}, ErrMissingStartTime
	}
	if rec.LastUpdatedTime != 0 && rec.LastUpdatedTime < rec.StartTime {
		return OutageRecord{}, ErrNegativeDuration
	}
	if rec.NumPeople < 0 {
		return OutageRecord{}, ErrNegativeCustomers
	}

	start := fromMillis(rec.StartTime)
	lastUpdated := start
	if rec.LastUpdatedTime != 0 {
		lastUpdated = fromMillis(rec.LastUpdatedTime)
	}

	out := OutageRecord{
		ID:              rec.ID,
		ZipCode:         truncateZip(rec.ZipCode),
		StartTime:       start,
		LastUpdatedTime: lastUpdated,
		NumPeople:       rec.NumPeople,
		Status:          rec.Status,
		Cause:           rec.Cause,
		Trend:           rec.Trend,
		Latitude:        rec.Latitude,
		Longitude:       rec.Longitude,

		RawPayload: raw.Value,
	}
	if rec.EstimatedETA != 0 {
		out.EstimatedETA = fromMillis(rec.EstimatedETA)
	}
	if out.ID == "" {
		out.ID = generateID(out.ZipCode, rec.StartTime, rec.LastUpdatedTime, rec.NumPeople)
	}
	out.ProcessedAt = clock.Now()
	return out, nil
}

// truncateZip normalizes a postal code to at most five characters, so zip+4
// values key into the same neighborhood as their five-digit prefix.
func truncateZip(zip string) string {
	if len(zip) > 5 {
		return zip[:5]
	}
	return zip
}

// generateID produces a deterministic ID from the record's key fields.
// Reprocessing the same raw message yields the same ID, making at-least-once
// delivery safe without distributed coordination.
func generateID(zip string, startMillis, updatedMillis int64, people int) string {
	input := fmt.Sprintf("%s|%d|%d|%d", zip, startMillis, updatedMillis, people)
	hash := sha256.Sum256([]byte(input))
	return "out-" + hex.EncodeToString(hash[:8])
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
