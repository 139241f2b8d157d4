// Package core holds the storage port and the shared value types of Day Craft.
package core

import (
	"fmt"
	"time"
)

// EventType represents the type of change on a stored key.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of the value stored under a key.
type Event struct {
	Type      EventType
	ID        string // storage key
	Timestamp int64  // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s %s @ %s", e.Type, e.ID, time.Unix(e.Timestamp, 0).UTC().Format(time.RFC3339))
}

// NewEvent stamps an event with the current time.
func NewEvent(t EventType, key string) Event {
	return Event{Type: t, ID: key, Timestamp: time.Now().Unix()}
}
