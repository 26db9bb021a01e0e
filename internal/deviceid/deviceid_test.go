package deviceid

import (
	"errors"
	"net"
	"testing"
)

func TestFromMAC(t *testing.T) {
	mac, _ := net.ParseMAC("24:6f:28:a1:b2:c3")
	got, err := FromMAC(mac)
	if err != nil {
		t.Fatalf("FromMAC() error = %v", err)
	}
	if got != "28A1B2C3" {
		t.Errorf("FromMAC() = %q, want %q", got, "28A1B2C3")
	}

	if _, err := FromMAC(net.HardwareAddr{0x01, 0x02}); err == nil {
		t.Error("FromMAC() should fail for a 2-byte address")
	}
}

func TestStatic(t *testing.T) {
	id, err := Static{ID: "CAFE0001"}.GetDeviceID()
	if err != nil || id != "CAFE0001" {
		t.Errorf("Static.GetDeviceID() = %q, %v", id, err)
	}
	if _, err := (Static{}).GetDeviceID(); err == nil {
		t.Error("empty Static should return an error")
	}
}

func TestInterfacesSkipsLoopbackAndZero(t *testing.T) {
	p := Interfaces{list: func() ([]net.Interface, error) {
		return []net.Interface{
			{Name: "lo", Flags: net.FlagLoopback, HardwareAddr: net.HardwareAddr{1, 2, 3, 4, 5, 6}},
			{Name: "dummy0", HardwareAddr: net.HardwareAddr{0, 0, 0, 0, 0, 0}},
			{Name: "wlan0", HardwareAddr: net.HardwareAddr{0xaa, 0xbb, 0xde, 0xad, 0xbe, 0xef}},
		}, nil
	}}
	id, err := p.GetDeviceID()
	if err != nil {
		t.Fatalf("GetDeviceID() error = %v", err)
	}
	if id != "DEADBEEF" {
		t.Errorf("GetDeviceID() = %q, want %q", id, "DEADBEEF")
	}
}

func TestInterfacesNoHardwareAddress(t *testing.T) {
	p := Interfaces{list: func() ([]net.Interface, error) {
		return []net.Interface{{Name: "lo", Flags: net.FlagLoopback}}, nil
	}}
	if _, err := p.GetDeviceID(); !errors.Is(err, ErrNoHardwareAddress) {
		t.Errorf("GetDeviceID() error = %v, want ErrNoHardwareAddress", err)
	}
}

func TestHostnameIsStable(t *testing.T) {
	p := Hostname{hostname: func() (string, error) { return "knob-desk", nil }}
	a, err := p.GetDeviceID()
	if err != nil {
		t.Fatalf("GetDeviceID() error = %v", err)
	}
	b, _ := p.GetDeviceID()
	if a != b {
		t.Errorf("hostname id not stable: %q vs %q", a, b)
	}
	if len(a) != IDLen {
		t.Errorf("len(id) = %d, want %d", len(a), IDLen)
	}

	other := Hostname{hostname: func() (string, error) { return "knob-kitchen", nil }}
	c, _ := other.GetDeviceID()
	if a == c {
		t.Errorf("different hostnames produced the same id %q", a)
	}
}

func TestChain(t *testing.T) {
	failing := Static{}
	c := Chain{failing, Static{ID: "SECOND"}, Static{ID: "THIRD"}}
	id, err := c.GetDeviceID()
	if err != nil || id != "SECOND" {
		t.Errorf("Chain.GetDeviceID() = %q, %v, want SECOND", id, err)
	}

	if _, err := (Chain{failing, failing}).GetDeviceID(); err == nil {
		t.Error("Chain of failing providers should return an error")
	}
	if _, err := (Chain{}).GetDeviceID(); err == nil {
		t.Error("empty Chain should return an error")
	}
}

func TestInterfacesUsesDownInterface(t *testing.T) {
	p := Interfaces{list: func() ([]net.Interface, error) {
		return []net.Interface{
			{Name: "eth0", Flags: 0, HardwareAddr: net.HardwareAddr{0x02, 0x00, 0x12, 0x34, 0x56, 0x78}},
		}, nil
	}}
	id, err := p.GetDeviceID()
	if err != nil {
		t.Fatalf("GetDeviceID() error = %v", err)
	}
	if id != "12345678" {
		t.Errorf("GetDeviceID() = %q, want %q (down links still identify the device)", id, "12345678")
	}
}
