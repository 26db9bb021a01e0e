package ble

import "fmt"

// State is the lifecycle state of a Manager.
type State int

const (
	StateIdle State = iota
	StateInitializing
	StateAdvertising
	StateConnected
	// StateDisconnected only lasts for the duration of the Update call
	// that observes the drop; it is reported through Transition.
	StateDisconnected
	// StateError is entered when the keyboard fails to start.
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateAdvertising:
		return "advertising"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Transition records a state change.
type Transition struct {
	From State
	To   State
}
