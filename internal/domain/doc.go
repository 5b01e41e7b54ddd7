// Package domain models power outage reports for the Nashville Electric
// Service (NES) coverage area.
//
// # Data Source
//
// Outage reports originate from the utility's public outage feed. The upstream
// collector polls the feed on a fixed interval and publishes each outage as
// flat JSON to the Kafka raw topic. A record describes one reported power-loss
// incident: start and last-updated times, affected customer count, and
// optional classification metadata.
//
// # Feed Conventions
//
// Timestamps:
//
//	startTime, lastUpdatedTime, estimated_eta are Unix epoch milliseconds.
//	Duration is (lastUpdatedTime - startTime) expressed in hours by dividing
//	milliseconds by 3,600,000. Records with lastUpdatedTime earlier than
//	startTime are malformed and rejected at ingestion.
//
// Zip codes:
//
//	Five-digit postal codes keyed to the metro neighborhood table in the geo
//	package. Longer values (zip+4) are truncated to five characters. A record
//	may omit the zip entirely; ingestion then falls back to reverse geocoding
//	the coordinates and finally to the nearest table entry.
//
// Classification fields (all optional):
//
//	status:  feed-reported state, e.g. "Assigned", "Investigating".
//	cause:   "weather", "accident", "equipment", or "unknown" when absent.
//	trend:   "worsening", "stable", or "improving"; feeds severity scoring.
//
// # ID Generation
//
// Record IDs are deterministic SHA-256 hashes of zip|start|lastUpdated|people.
// Reprocessing the same raw message produces the same ID, so replays and
// at-least-once delivery cannot duplicate history entries. See [generateID].
package domain
