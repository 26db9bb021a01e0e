package encoder

import "testing"

func TestConstructors(t *testing.T) {
	if ev := Rotation(-3); ev.Type != EventRotation || ev.Value != -3 {
		t.Errorf("Rotation(-3) = %+v", ev)
	}
	if ev := Click(); ev.Type != EventClick || ev.Value != 0 {
		t.Errorf("Click() = %+v", ev)
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		t    EventType
		want string
	}{
		{EventOther, "other"},
		{EventRotation, "rotation"},
		{EventClick, "click"},
		{EventType(42), "EventType(42)"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("EventType(%d).String() = %q, want %q", int(tt.t), got, tt.want)
		}
	}
}

func TestEmitDoesNotBlockWhenFull(t *testing.T) {
	l := NewListener(Bindings{})
	for i := 0; i < cap(l.ch)+5; i++ {
		l.emit(Rotation(1))
	}
	if len(l.ch) != cap(l.ch) {
		t.Errorf("channel length = %d, want %d", len(l.ch), cap(l.ch))
	}
	ev := <-l.Events()
	if ev != Rotation(1) {
		t.Errorf("first event = %+v, want %+v", ev, Rotation(1))
	}
}

func TestStopIsIdempotent(t *testing.T) {
	l := NewListener(Bindings{Click: []string{"m"}})
	l.Stop()
	l.Stop()
	select {
	case <-l.done:
	default:
		t.Error("done channel should be closed after Stop")
	}
}
