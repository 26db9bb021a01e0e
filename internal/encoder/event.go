// Package encoder models rotary-encoder input and provides a key-binding
// event source for hosts without an encoder attached.
package encoder

import "fmt"

// EventType identifies what the encoder did.
type EventType int

const (
	// EventOther is any input the media remote does not act on.
	EventOther EventType = iota
	// EventRotation is a detent turn; Event.Value carries the signed step.
	EventRotation
	// EventClick is a press of the encoder shaft.
	EventClick
)

func (t EventType) String() string {
	switch t {
	case EventOther:
		return "other"
	case EventRotation:
		return "rotation"
	case EventClick:
		return "click"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is a single encoder input. Value is positive for clockwise
// rotation, negative for counter-clockwise and unused otherwise.
type Event struct {
	Type  EventType
	Value int
}

// Rotation returns a rotation event of delta steps.
func Rotation(delta int) Event {
	return Event{Type: EventRotation, Value: delta}
}

// Click returns a click event.
func Click() Event {
	return Event{Type: EventClick}
}
