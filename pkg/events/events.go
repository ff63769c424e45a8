package events

import (
	"fmt"
	"strings"
	"time"
)

// EventType type of event
type EventType string

const (
	TypeCreated EventType = "CREATED"
	TypeUpdated EventType = "UPDATED"
	TypeDeleted EventType = "DELETED"
)

// Event represents a change made to a pipeline.
type Event struct {
	Type      EventType `json:"type"`
	Pipeline  string    `json:"pipeline"`
	RequestID string    `json:"requestId,omitempty"`
	Time      time.Time `json:"time"`
}

// New returns a new event of the given type for the given pipeline.
func New(t EventType, pipeline, requestID string) Event {
	return Event{
		Type:      t,
		Pipeline:  pipeline,
		RequestID: requestID,
		Time:      time.Now().UTC(),
	}
}

// RoutingKey returns the key used to route the event, e.g. pipeline.updated
func (e Event) RoutingKey() string {
	return "pipeline." + strings.ToLower(string(e.Type))
}

func (e Event) String() string {
	return fmt.Sprintf("%s for pipeline %s", e.Type, e.Pipeline)
}
