package ble

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/chaz8081/volknob/internal/ble/hid"
)

// mockKeyboard records calls and reports a settable connection status.
type mockKeyboard struct {
	name      string
	connected bool
	beginErr  error
	writeErr  error

	begins      int
	releaseAlls int
	closes      int
	writes      []hid.MediaKey
}

func (k *mockKeyboard) Begin() error {
	k.begins++
	return k.beginErr
}

func (k *mockKeyboard) IsConnected() bool { return k.connected }

func (k *mockKeyboard) ReleaseAll() error {
	k.releaseAlls++
	return nil
}

func (k *mockKeyboard) Write(key hid.MediaKey) error {
	if k.writeErr != nil {
		return k.writeErr
	}
	k.writes = append(k.writes, key)
	return nil
}

func (k *mockKeyboard) Close() error {
	k.closes++
	return nil
}

// mockFactory hands out mockKeyboards and remembers each one.
type mockFactory struct {
	beginErr  error
	createErr error
	created   []*mockKeyboard
}

func (f *mockFactory) New(name string) (Keyboard, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	k := &mockKeyboard{name: name, beginErr: f.beginErr}
	f.created = append(f.created, k)
	return k, nil
}

// latest returns the most recently created keyboard.
func (f *mockFactory) latest() *mockKeyboard {
	if len(f.created) == 0 {
		return nil
	}
	return f.created[len(f.created)-1]
}

type staticID struct {
	id  string
	err error
}

func (s staticID) GetDeviceID() (string, error) { return s.id, s.err }

// recordHandler captures log records for assertions.
type recordHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(string) slog.Handler      { return h }

// messages returns logged messages that contain substr.
func (h *recordHandler) messages(substr string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, r := range h.records {
		if strings.Contains(r.Message, substr) {
			out = append(out, r.Message)
		}
	}
	return out
}

// stateLogs returns the "state" attribute of every state-change record.
func (h *recordHandler) stateLogs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, r := range h.records {
		if r.Message != "[BLE] state" {
			continue
		}
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == "state" {
				out = append(out, a.Value.String())
				return false
			}
			return true
		})
	}
	return out
}

var errBoom = errors.New("boom")

func TestMockKeyboardImplementsInterface(t *testing.T) {
	var _ Keyboard = (*mockKeyboard)(nil)
}
