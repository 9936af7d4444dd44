package models

import "time"

// Position is the last-known device coordinate in floating point degrees.
// It is never persisted standalone; it reaches storage only through history.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HistoryEntry is one immutable row of the location history: a local
// wall-clock stamp, a coordinate, and the availability status in effect when
// the fix was processed. The JSON field names are the durable wire format of
// the `history` key, so they must not change.
type HistoryEntry struct {
	Time   string  `json:"time"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Status string  `json:"status"`
}

// HistoryTimeLayout formats entry timestamps: local time of day, no date and
// no zone, matching what the terminal displays in its history panel.
const HistoryTimeLayout = "15:04:05"

// NewHistoryEntry stamps a coordinate and status with the current local time.
func NewHistoryEntry(now time.Time, pos Position, status string) HistoryEntry {
	return HistoryEntry{
		Time:   now.Format(HistoryTimeLayout),
		Lat:    pos.Lat,
		Lng:    pos.Lng,
		Status: status,
	}
}
