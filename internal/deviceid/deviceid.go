// Package deviceid derives a short, stable identifier for this device.
// The preferred source is the hardware address; hosts without one fall
// back to a name-based UUID of the hostname.
package deviceid

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/google/uuid"
)

// IDLen is the number of hex characters in a derived ID.
const IDLen = 8

// ErrNoHardwareAddress is returned when no usable interface has a MAC.
var ErrNoHardwareAddress = errors.New("deviceid: no hardware address found")

// namespace scopes hostname-derived IDs so they do not collide with
// other name-based UUIDs of the same hostname.
var namespace = uuid.MustParse("5f0d3c1e-8a2b-4f7e-9c61-2d4b7a90e3f5")

// Provider returns the device identifier.
type Provider interface {
	GetDeviceID() (string, error)
}

// FromMAC formats the last four bytes of mac as upper-case hex.
func FromMAC(mac net.HardwareAddr) (string, error) {
	if len(mac) < 4 {
		return "", fmt.Errorf("deviceid: hardware address too short: %d bytes", len(mac))
	}
	return strings.ToUpper(fmt.Sprintf("%x", []byte(mac[len(mac)-4:]))), nil
}

// Static always returns ID. An empty ID is an error so that a blank
// config value falls through a Chain.
type Static struct {
	ID string
}

func (s Static) GetDeviceID() (string, error) {
	if s.ID == "" {
		return "", fmt.Errorf("deviceid: static id is empty")
	}
	return s.ID, nil
}

// Interfaces derives the ID from the first non-loopback network
// interface with a non-zero hardware address. Down interfaces are not
// skipped, so the ID does not change when a link goes down.
type Interfaces struct {
	// list defaults to net.Interfaces; replaced in tests.
	list func() ([]net.Interface, error)
}

func (p Interfaces) GetDeviceID() (string, error) {
	list := p.list
	if list == nil {
		list = net.Interfaces
	}
	ifaces, err := list()
	if err != nil {
		return "", fmt.Errorf("deviceid: list interfaces: %w", err)
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if len(iface.HardwareAddr) < 4 || isZero(iface.HardwareAddr) {
			continue
		}
		return FromMAC(iface.HardwareAddr)
	}
	return "", ErrNoHardwareAddress
}

func isZero(b []byte) bool {
	return len(bytes.Trim(b, "\x00")) == 0
}

// Hostname derives the ID from a SHA-1 name-based UUID of the hostname.
type Hostname struct {
	// hostname defaults to os.Hostname; replaced in tests.
	hostname func() (string, error)
}

func (p Hostname) GetDeviceID() (string, error) {
	hostname := p.hostname
	if hostname == nil {
		hostname = os.Hostname
	}
	name, err := hostname()
	if err != nil {
		return "", fmt.Errorf("deviceid: hostname: %w", err)
	}
	if name == "" {
		return "", fmt.Errorf("deviceid: hostname is empty")
	}
	id := uuid.NewSHA1(namespace, []byte(name))
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:IDLen]), nil
}

// Chain tries each provider in order and returns the first ID found.
type Chain []Provider

func (c Chain) GetDeviceID() (string, error) {
	var errs []error
	for _, p := range c {
		id, err := p.GetDeviceID()
		if err == nil {
			return id, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", fmt.Errorf("deviceid: no providers")
	}
	return "", errors.Join(errs...)
}

// Default returns the provider chain used by the daemon: a configured
// override (if any), then the hardware address, then the hostname.
func Default(override string) Provider {
	return Chain{Static{ID: override}, Interfaces{}, Hostname{}}
}
