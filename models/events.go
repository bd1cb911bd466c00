package models

import "time"

// Event describes a single domain mutation. The core performs no I/O of its
// own; instead every state change is reported through the configured sink so
// the host can log it, publish it, or drop it.
type Event struct {
	EntityID  string         `json:"entity_id"`
	Operation string         `json:"operation"`
	Detail    map[string]any `json:"detail,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// EventSink receives domain events. Implementations must not call back into
// the entity that emitted the event.
type EventSink interface {
	Publish(event Event)
}

type noopSink struct{}

func (noopSink) Publish(Event) {}

var eventSink EventSink = noopSink{}

// SetEventSink installs the host's event subscriber. Passing nil restores the
// no-op sink. Not safe for concurrent use with in-flight operations; set it
// once during startup.
func SetEventSink(sink EventSink) {
	if sink == nil {
		eventSink = noopSink{}
		return
	}
	eventSink = sink
}

func emit(entityID, operation string, detail map[string]any) {
	eventSink.Publish(Event{
		EntityID:  entityID,
		Operation: operation,
		Detail:    detail,
		Timestamp: time.Now(),
	})
}
