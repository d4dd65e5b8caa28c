package events

import "time"

// ProtocolVersion is bumped whenever the wire format of Message changes
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventTasksChanged EventType = "tasks_changed"
	EventPing         EventType = "ping"
	EventPong         EventType = "pong"
)

// Event is a change notification exchanged through the daemon
type Event struct {
	Type       EventType
	Table      string    // Table that was written, e.g. "tasks"
	Origin     int       // Process id of the writer, so it can ignore its own echoes
	Timestamp  time.Time // When the event occurred
	SequenceID int64     // Assigned by the daemon, monotonically increasing
}

// Message wraps events and control messages for the wire protocol
type Message struct {
	Version int    `json:",omitempty"`
	Type    string // "event", "ping", "pong"
	Event   *Event `json:",omitempty"`
}
