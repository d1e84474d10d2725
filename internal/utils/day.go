// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password hashing,
// HTTP response writing, JWT token signing and validation, and the
// tracking-day boundary arithmetic shared by the habit services.
package utils

import "time"

// TrackingOffset is the fixed positive UTC offset applied before truncating
// a timestamp to a tracking day. Every "same day" comparison in the system
// must go through DayIndex/DayBounds so that this offset is applied in
// exactly one place.
const TrackingOffset = 7 * time.Hour

const (
	dayMs    = int64(24 * time.Hour / time.Millisecond)
	offsetMs = int64(TrackingOffset / time.Millisecond)
)

// TrackingLocation is the fixed-offset zone corresponding to TrackingOffset.
// Goal period starts (Monday, first of month, January 1) are computed in
// this location so that period boundaries and day buckets always agree.
var TrackingLocation = time.FixedZone("UTC+7", int(TrackingOffset/time.Second))

// DayIndex returns the tracking-day ordinal for t. Two timestamps share a
// tracking day iff their indices are equal; adjacent tracking days differ
// by exactly 1.
func DayIndex(t time.Time) int64 {
	return floorDiv(t.UnixMilli()+offsetMs, dayMs)
}

// DayBounds returns the inclusive UTC instant range [start, end] of the
// tracking day containing t. end is the final representable millisecond of
// the day: start + 24h - 1ms.
func DayBounds(t time.Time) (time.Time, time.Time) {
	startMs := DayIndex(t)*dayMs - offsetMs
	start := time.UnixMilli(startMs).UTC()
	end := time.UnixMilli(startMs + dayMs - 1).UTC()
	return start, end
}

// floorDiv divides a by b rounding toward negative infinity, so that
// pre-1970 timestamps bucket correctly.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
