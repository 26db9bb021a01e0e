//go:build linux || baremetal

package ble

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"tinygo.org/x/bluetooth"

	"github.com/chaz8081/volknob/internal/ble/hid"
)

// Assigned numbers from the Bluetooth SIG.
var (
	hidServiceUUID        = bluetooth.New16BitUUID(0x1812)
	hidInformationUUID    = bluetooth.New16BitUUID(0x2A4A)
	reportMapUUID         = bluetooth.New16BitUUID(0x2A4B)
	hidControlPointUUID   = bluetooth.New16BitUUID(0x2A4C)
	reportUUID            = bluetooth.New16BitUUID(0x2A4D)
	protocolModeUUID      = bluetooth.New16BitUUID(0x2A4E)
	deviceInfoServiceUUID = bluetooth.New16BitUUID(0x180A)
	manufacturerNameUUID  = bluetooth.New16BitUUID(0x2A29)
)

// protocolModeReport selects Report Protocol Mode.
const protocolModeReport = 0x01

// The GATT database can only be registered once per adapter, so the
// services and the report handle outlive any one PeripheralKeyboard.
// A failed registration is retried by the next Begin.
var (
	gattMu         sync.Mutex
	gattRegistered bool
	reportChar     bluetooth.Characteristic
	connected      atomic.Bool
)

// PeripheralKeyboard is a HID-over-GATT consumer-control keyboard backed
// by tinygo.org/x/bluetooth.
type PeripheralKeyboard struct {
	adapter *bluetooth.Adapter
	name    string
	opts    PeripheralOptions
	adv     *bluetooth.Advertisement
	closed  bool

	// Hooks onto the radio; tests replace them.
	register  func() error
	advertise func() error
	report    func([]byte) (int, error)
	linked    func() bool
}

// Compile-time check that PeripheralKeyboard implements Keyboard.
var _ Keyboard = (*PeripheralKeyboard)(nil)

// NewPeripheralKeyboard returns a Keyboard that advertises as name on the
// default adapter.
func NewPeripheralKeyboard(name string, opts PeripheralOptions) (Keyboard, error) {
	if name == "" {
		return nil, fmt.Errorf("ble: peripheral name must not be empty")
	}
	k := &PeripheralKeyboard{
		adapter: bluetooth.DefaultAdapter,
		name:    name,
		opts:    opts,
		report: func(p []byte) (int, error) {
			return reportChar.Write(p)
		},
		linked: connected.Load,
	}
	k.register = k.registerGATT
	k.advertise = k.startAdvertising
	return k, nil
}

// Begin enables the adapter, registers the HID service and starts
// advertising.
func (k *PeripheralKeyboard) Begin() error {
	if k.closed {
		return fmt.Errorf("ble: keyboard closed")
	}

	if err := ensureRegistered(k.register); err != nil {
		return err
	}
	return k.advertise()
}

// ensureRegistered runs register until it succeeds once.
func ensureRegistered(register func() error) error {
	gattMu.Lock()
	defer gattMu.Unlock()
	if gattRegistered {
		return nil
	}
	if err := register(); err != nil {
		return err
	}
	gattRegistered = true
	return nil
}

func (k *PeripheralKeyboard) startAdvertising() error {
	k.adv = k.adapter.DefaultAdvertisement()
	if err := k.adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    k.name,
		ServiceUUIDs: []bluetooth.UUID{hidServiceUUID},
	}); err != nil {
		return fmt.Errorf("ble: configure advertisement: %w", err)
	}
	if err := k.adv.Start(); err != nil {
		// Configure marks the advertisement started; reset it so the
		// next Begin can configure again.
		_ = k.adv.Stop()
		k.adv = nil
		return fmt.Errorf("ble: start advertisement: %w", err)
	}
	return nil
}

func (k *PeripheralKeyboard) registerGATT() error {
	if err := k.adapter.Enable(); err != nil {
		return fmt.Errorf("ble: enable adapter: %w", err)
	}

	k.adapter.SetConnectHandler(func(device bluetooth.Device, c bool) {
		connected.Store(c)
		slog.Debug("[BLE] central connection changed", "address", device.Address.String(), "connected", c)
	})

	manufacturer := k.opts.Manufacturer
	if manufacturer == "" {
		manufacturer = "volknob"
	}
	if err := k.adapter.AddService(&bluetooth.Service{
		UUID: deviceInfoServiceUUID,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				UUID:  manufacturerNameUUID,
				Value: []byte(manufacturer),
				Flags: bluetooth.CharacteristicReadPermission,
			},
		},
	}); err != nil {
		return fmt.Errorf("ble: add device information service: %w", err)
	}

	if err := k.adapter.AddService(&bluetooth.Service{
		UUID: hidServiceUUID,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				UUID:  hidInformationUUID,
				Value: hid.HIDInformation(),
				Flags: bluetooth.CharacteristicReadPermission,
			},
			{
				UUID:  reportMapUUID,
				Value: hid.ReportMap,
				Flags: bluetooth.CharacteristicReadPermission,
			},
			{
				UUID:  protocolModeUUID,
				Value: []byte{protocolModeReport},
				Flags: bluetooth.CharacteristicReadPermission | bluetooth.CharacteristicWriteWithoutResponsePermission,
			},
			{
				UUID:  hidControlPointUUID,
				Value: []byte{0x00},
				Flags: bluetooth.CharacteristicWriteWithoutResponsePermission,
				WriteEvent: func(client bluetooth.Connection, offset int, value []byte) {
					slog.Debug("[BLE] hid control point", "value", value)
				},
			},
			{
				Handle: &reportChar,
				UUID:   reportUUID,
				Value:  hid.ReleaseReport(),
				Flags:  bluetooth.CharacteristicReadPermission | bluetooth.CharacteristicNotifyPermission,
			},
		},
	}); err != nil {
		return fmt.Errorf("ble: add hid service: %w", err)
	}
	return nil
}

// IsConnected reports whether a central is connected.
func (k *PeripheralKeyboard) IsConnected() bool {
	return !k.closed && k.linked()
}

// ReleaseAll notifies an empty report.
func (k *PeripheralKeyboard) ReleaseAll() error {
	return k.notify(hid.ReleaseReport())
}

// Write notifies a press report for key followed by a release report.
func (k *PeripheralKeyboard) Write(key hid.MediaKey) error {
	if err := k.notify(hid.ConsumerReport(key)); err != nil {
		return fmt.Errorf("ble: press %s: %w", key, err)
	}
	if err := k.notify(hid.ReleaseReport()); err != nil {
		return fmt.Errorf("ble: release %s: %w", key, err)
	}
	return nil
}

func (k *PeripheralKeyboard) notify(report []byte) error {
	if !k.IsConnected() {
		return ErrNotConnected
	}
	_, err := k.report(report)
	return err
}

// Close stops advertising. The keyboard cannot be restarted; create a
// new one instead.
func (k *PeripheralKeyboard) Close() error {
	if k.closed {
		return nil
	}
	k.closed = true
	if k.adv == nil {
		return nil
	}
	if err := k.adv.Stop(); err != nil {
		return fmt.Errorf("ble: stop advertisement: %w", err)
	}
	return nil
}
