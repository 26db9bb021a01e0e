// Package inject provides a Keyboard that taps media keys on the local
// host using robotgo, for running the remote without a BLE radio.
package inject

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/chaz8081/volknob/internal/ble"
	"github.com/chaz8081/volknob/internal/ble/hid"
)

// robotgo key names for the consumer usages we send.
var keyNames = map[hid.MediaKey]string{
	hid.VolumeUp:   "audio_vol_up",
	hid.VolumeDown: "audio_vol_down",
	hid.Mute:       "audio_mute",
	hid.PlayPause:  "audio_play",
	hid.NextTrack:  "audio_next",
	hid.PrevTrack:  "audio_prev",
}

// LocalKeyboard delivers media keys to the host it runs on. It reports
// itself connected from Begin until Close.
type LocalKeyboard struct {
	name    string
	started bool
	tap     func(key string) error
}

// Compile-time interface satisfaction check.
var _ ble.Keyboard = (*LocalKeyboard)(nil)

// NewLocalKeyboard creates a LocalKeyboard. name is only used for
// diagnostics.
func NewLocalKeyboard(name string) *LocalKeyboard {
	return &LocalKeyboard{
		name: name,
		tap: func(key string) error {
			return robotgo.KeyTap(key)
		},
	}
}

// Factory adapts NewLocalKeyboard to ble.KeyboardFactory.
func Factory(name string) (ble.Keyboard, error) {
	return NewLocalKeyboard(name), nil
}

func (k *LocalKeyboard) Begin() error {
	k.started = true
	return nil
}

func (k *LocalKeyboard) IsConnected() bool {
	return k.started
}

// ReleaseAll is a no-op: robotgo taps never leave a key held.
func (k *LocalKeyboard) ReleaseAll() error {
	return nil
}

// Write taps key on the local host.
func (k *LocalKeyboard) Write(key hid.MediaKey) error {
	if !k.started {
		return ble.ErrNotConnected
	}
	name, ok := keyNames[key]
	if !ok {
		return fmt.Errorf("inject: no local key for %s", key)
	}
	if err := k.tap(name); err != nil {
		return fmt.Errorf("inject: key tap %s: %w", name, err)
	}
	return nil
}

func (k *LocalKeyboard) Close() error {
	k.started = false
	return nil
}
