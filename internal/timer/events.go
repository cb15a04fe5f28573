// ABOUTME: Events emitted by the countdown controller.
// ABOUTME: Presentation layers subscribe to refresh displays and trigger sounds.
package timer

// EventType identifies a controller transition.
type EventType int

const (
	EventStarted EventType = iota
	EventTick
	EventPaused
	EventResumed
	EventIntervalChanged
	EventSequenceComplete
	EventReset
	EventStopped
)

func (t EventType) String() string {
	switch t {
	case EventStarted:
		return "started"
	case EventTick:
		return "tick"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventIntervalChanged:
		return "interval_changed"
	case EventSequenceComplete:
		return "sequence_complete"
	case EventReset:
		return "reset"
	case EventStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Event carries the controller status right after a transition.
type Event struct {
	Type   EventType
	Status Status
}

// Listener receives events in the order they occur.
type Listener func(Event)
