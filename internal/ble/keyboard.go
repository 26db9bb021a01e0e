// Package ble manages the lifecycle of a BLE HID media-key peripheral:
// bringing the HID stack up, advertising, tracking the connection to a
// central and translating encoder events into media-key taps.
package ble

import (
	"errors"

	"github.com/chaz8081/volknob/internal/ble/hid"
)

var (
	// ErrAlreadyInitialized is returned by Manager.Init when the keyboard
	// handle is already live.
	ErrAlreadyInitialized = errors.New("ble: already initialized")
	// ErrNotConnected is returned by a Keyboard when no central is
	// connected to receive a report.
	ErrNotConnected = errors.New("ble: no central connected")
	// ErrPeripheralUnsupported is returned on platforms where the BLE
	// stack cannot act as a GATT server.
	ErrPeripheralUnsupported = errors.New("ble: peripheral mode not supported on this platform")
)

// Keyboard is a HID media-key sender. Implementations own the radio
// (or whatever transport they use) from Begin until Close.
type Keyboard interface {
	// Begin starts the HID service and begins advertising.
	Begin() error
	// IsConnected reports whether a central is currently connected.
	IsConnected() bool
	// ReleaseAll sends an empty report so the host sees no key held.
	ReleaseAll() error
	// Write taps key: a press report followed by a release report.
	Write(key hid.MediaKey) error
	// Close stops advertising and releases the transport.
	Close() error
}

// KeyboardFactory creates a Keyboard advertising under name.
type KeyboardFactory func(name string) (Keyboard, error)

// DeviceIdentity supplies the platform identifier used in the
// advertised device name.
type DeviceIdentity interface {
	GetDeviceID() (string, error)
}

// PeripheralOptions configures the BLE HID peripheral.
type PeripheralOptions struct {
	Manufacturer string // Device Information manufacturer name
}
