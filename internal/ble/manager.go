package ble

import (
	"fmt"
	"log/slog"

	"github.com/chaz8081/volknob/internal/ble/hid"
	"github.com/chaz8081/volknob/internal/encoder"
)

// DefaultNamePrefix is prepended to the device ID to form the
// advertised name.
const DefaultNamePrefix = "CM-"

// fallbackDeviceID is used when the identity provider fails.
const fallbackDeviceID = "00000000"

// Options configures a Manager.
type Options struct {
	Logger       *slog.Logger     // defaults to slog.Default()
	NamePrefix   string           // defaults to DefaultNamePrefix
	OnTransition func(Transition) // optional; called on every state change
}

// Manager owns a single BLE HID keyboard and tracks its connection
// lifecycle. The host polls Update once per control-loop tick.
//
// A Manager is not safe for concurrent use. All methods must be called
// from the same goroutine.
type Manager struct {
	deviceName   string
	newKeyboard  KeyboardFactory
	log          *slog.Logger
	onTransition func(Transition)

	state       State
	kbd         Keyboard
	initialized bool
}

// NewManager creates a Manager. The device name is derived once from ids;
// no hardware is touched until Init.
// Panics if newKeyboard is nil (programmer error).
func NewManager(ids DeviceIdentity, newKeyboard KeyboardFactory, opts Options) *Manager {
	if newKeyboard == nil {
		panic("ble: NewManager called with nil keyboard factory")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.NamePrefix == "" {
		opts.NamePrefix = DefaultNamePrefix
	}

	id := fallbackDeviceID
	if ids != nil {
		got, err := ids.GetDeviceID()
		switch {
		case err != nil:
			opts.Logger.Warn("[BLE] device id unavailable, using fallback", "error", err, "id", id)
		case got != "":
			id = got
		}
	}

	return &Manager{
		deviceName:   opts.NamePrefix + id,
		newKeyboard:  newKeyboard,
		log:          opts.Logger,
		onTransition: opts.OnTransition,
		state:        StateIdle,
	}
}

// DeviceName returns the advertised name.
func (m *Manager) DeviceName() string {
	return m.deviceName
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	return m.state
}

// Init creates the keyboard and starts advertising. It returns
// ErrAlreadyInitialized if called again before Shutdown. If the keyboard
// cannot be started the Manager enters StateError and stays uninitialized.
func (m *Manager) Init() error {
	if m.initialized {
		return ErrAlreadyInitialized
	}

	m.log.Info("[BLE] initializing", "name", m.deviceName)
	m.setState(StateInitializing)

	kbd, err := m.newKeyboard(m.deviceName)
	if err == nil && kbd == nil {
		err = fmt.Errorf("factory returned nil keyboard")
	}
	if err != nil {
		m.setState(StateError)
		return fmt.Errorf("ble: create keyboard: %w", err)
	}

	if err := kbd.Begin(); err != nil {
		if cerr := kbd.Close(); cerr != nil {
			m.log.Warn("[BLE] close after failed start", "error", cerr)
		}
		m.setState(StateError)
		return fmt.Errorf("ble: start advertising: %w", err)
	}

	m.kbd = kbd
	m.initialized = true
	m.setState(StateAdvertising)

	m.log.Info("[BLE] initialized", "name", m.deviceName)
	m.log.Info("[BLE] advertising, waiting for connection")
	return nil
}

// Update polls the keyboard's connection status and advances the state
// machine on a change. A drop from StateConnected passes through
// StateDisconnected and lands on StateAdvertising within the same call.
func (m *Manager) Update() {
	if !m.initialized {
		return
	}

	connected := m.kbd.IsConnected()

	switch {
	case connected && m.state != StateConnected:
		m.setState(StateConnected)
		m.log.Info("[BLE] device connected")

		// An empty report resynchronizes the host's view of held keys.
		if err := m.kbd.ReleaseAll(); err != nil {
			m.log.Warn("[BLE] release all keys", "error", err)
		}

	case !connected && m.state == StateConnected:
		m.setState(StateDisconnected)
		m.log.Info("[BLE] device disconnected")

		// The stack resumes advertising on its own after a disconnect.
		m.setState(StateAdvertising)
		m.log.Info("[BLE] advertising, waiting for reconnection")
	}
}

// Shutdown closes the keyboard and returns to StateIdle.
// It is a no-op if the Manager is not initialized.
func (m *Manager) Shutdown() {
	if !m.initialized {
		return
	}

	m.log.Info("[BLE] shutting down")

	if err := m.kbd.Close(); err != nil {
		m.log.Warn("[BLE] close keyboard", "error", err)
	}
	m.kbd = nil
	m.initialized = false
	m.setState(StateIdle)

	m.log.Info("[BLE] shutdown complete")
}

// IsConnected reports whether a central is connected right now.
func (m *Manager) IsConnected() bool {
	return m.initialized && m.kbd != nil && m.kbd.IsConnected()
}

// IsAdvertising reports whether the Manager is live and waiting for a
// central.
func (m *Manager) IsAdvertising() bool {
	return m.initialized && m.state == StateAdvertising
}

// HandleEncoderEvent maps an encoder event to a media-key tap. Events
// are dropped while no central is connected.
func (m *Manager) HandleEncoderEvent(ev encoder.Event) {
	if !m.IsConnected() {
		return
	}

	switch ev.Type {
	case encoder.EventRotation:
		switch {
		case ev.Value > 0:
			m.send(hid.VolumeUp)
		case ev.Value < 0:
			m.send(hid.VolumeDown)
		}
	case encoder.EventClick:
		m.send(hid.Mute)
	}
}

func (m *Manager) send(key hid.MediaKey) {
	if err := m.kbd.Write(key); err != nil {
		m.log.Warn("[BLE] write media key", "key", key.String(), "error", err)
		return
	}
	m.log.Debug("[BLE] sent media key", "key", key.String())
}

// setState records s and notifies the observer. Repeating the current
// state does nothing.
func (m *Manager) setState(s State) {
	if m.state == s {
		return
	}
	prev := m.state
	m.state = s

	m.log.Info("[BLE] state", "state", s.String())
	if m.onTransition != nil {
		m.onTransition(Transition{From: prev, To: s})
	}
}
