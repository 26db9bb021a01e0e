//go:build !linux && !baremetal

package ble

// NewPeripheralKeyboard is unavailable where tinygo.org/x/bluetooth has
// no GATT server. Use the local backend instead.
func NewPeripheralKeyboard(name string, opts PeripheralOptions) (Keyboard, error) {
	return nil, ErrPeripheralUnsupported
}
