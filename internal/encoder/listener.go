package encoder

import (
	"log/slog"
	"strings"
	"sync"

	hook "github.com/robotn/gohook"
)

// Bindings maps key combos to encoder gestures. Keys are lowercase
// gohook key names (e.g., ["ctrl", "up"]). An empty combo is unbound.
type Bindings struct {
	Clockwise        []string
	CounterClockwise []string
	Click            []string
}

// Listener turns global key presses into encoder events.
type Listener struct {
	bindings Bindings
	ch       chan Event
	done     chan struct{}
	once     sync.Once
}

// NewListener creates a Listener for the given bindings.
func NewListener(b Bindings) *Listener {
	return &Listener{
		bindings: b,
		ch:       make(chan Event, 16),
		done:     make(chan struct{}),
	}
}

// Events returns the channel that receives encoder events.
// The channel is closed when Stop is called.
func (l *Listener) Events() <-chan Event {
	return l.ch
}

// Start begins listening for the bound keys.
// This function blocks until Stop is called. Run it in a goroutine.
func (l *Listener) Start() {
	l.bind(l.bindings.Clockwise, Rotation(1))
	l.bind(l.bindings.CounterClockwise, Rotation(-1))
	l.bind(l.bindings.Click, Click())

	evChan := hook.Start()
	go func() {
		<-l.done
		hook.End()
	}()
	<-hook.Process(evChan)
	close(l.ch)
}

func (l *Listener) bind(keys []string, ev Event) {
	if len(keys) == 0 {
		return
	}
	slog.Debug("[ENC] binding", "keys", strings.Join(keys, "+"), "event", ev.Type, "value", ev.Value)
	hook.Register(hook.KeyDown, keys, func(hook.Event) {
		l.emit(ev)
	})
}

// emit delivers ev without blocking the hook thread; events are dropped
// when the consumer falls behind.
func (l *Listener) emit(ev Event) {
	select {
	case l.ch <- ev:
	default:
		slog.Warn("[ENC] event channel full, dropping event", "event", ev.Type)
	}
}

// Stop terminates the listener.
// It is safe to call multiple times.
func (l *Listener) Stop() {
	l.once.Do(func() {
		close(l.done)
	})
}
