// Package logging provides output formatting and event aggregation for
// domaincheck.
package logging

import (
	"time"
)

// EventType identifies the outcome of a query.
type EventType int

const (
	// EventQueryAllowed is a query that matched no forbidden root.
	EventQueryAllowed EventType = iota
	// EventQueryForbidden is a query equal to or under a forbidden root.
	EventQueryForbidden
)

// String returns the verdict token for the event type.
func (t EventType) String() string {
	if t == EventQueryForbidden {
		return "Bad"
	}
	return "Good"
}

// Event represents a single checked query.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Index     int           // position in the query list
	Query     string        // as provided
	Domain    string        // normalized (lowercase) form
	Root      string        // matched forbidden root, empty when allowed
	Duration  time.Duration // lookup time
}

// IsForbidden returns true if the query was answered "Bad".
func (e *Event) IsForbidden() bool {
	return e.Type == EventQueryForbidden
}

// Verdict returns "Bad" or "Good".
func (e *Event) Verdict() string {
	return e.Type.String()
}
