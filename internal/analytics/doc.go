// Package analytics implements the outage scoring and aggregation engine:
// reliability, severity, and neighborhood safety scores, economic impact
// estimation, similarity matching, trend analysis, and time-series bucketing.
//
// Every function is a pure transform over a caller-supplied history slice.
// Nothing here retains state between calls, blocks, or spawns work, so the
// package is safe for arbitrary concurrent invocation. "Now" comes from the
// injectable clock in the domain package.
//
// The scoring constants are product-visible behavior carried over from the
// original NES outage checker, not internal tuning knobs. Changing them
// changes scores users have already seen and shared.
//
// All time bucketing (hour of day, weekday, month, season) uses the wall
// clock of the record's own timestamps; the feed parser produces UTC.
package analytics
