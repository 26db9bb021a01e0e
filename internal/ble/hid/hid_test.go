package hid

import (
	"bytes"
	"testing"
)

func TestConsumerReport(t *testing.T) {
	tests := []struct {
		key  MediaKey
		want []byte
	}{
		{VolumeUp, []byte{0xE9, 0x00}},
		{VolumeDown, []byte{0xEA, 0x00}},
		{Mute, []byte{0xE2, 0x00}},
		{MediaKey(0x0123), []byte{0x23, 0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			got := ConsumerReport(tt.key)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("ConsumerReport(%v) = %x, want %x", tt.key, got, tt.want)
			}
		})
	}
}

func TestReleaseReportIsZero(t *testing.T) {
	got := ReleaseReport()
	if !bytes.Equal(got, []byte{0, 0}) {
		t.Errorf("ReleaseReport() = %x, want 0000", got)
	}
}

func TestParseConsumerReport(t *testing.T) {
	key, err := ParseConsumerReport(ConsumerReport(Mute))
	if err != nil {
		t.Fatalf("ParseConsumerReport() error = %v", err)
	}
	if key != Mute {
		t.Errorf("ParseConsumerReport() = %v, want %v", key, Mute)
	}

	if _, err := ParseConsumerReport([]byte{0x01}); err == nil {
		t.Error("ParseConsumerReport() should fail on short report")
	}
}

func TestReportMapHasNoReportID(t *testing.T) {
	// Report ID items are the short item 0x85 followed by one byte. Walk
	// the items rather than searching bytes so data bytes are not
	// mistaken for tags.
	for i := 0; i < len(ReportMap); {
		tag := ReportMap[i]
		if tag == 0x85 {
			t.Fatalf("ReportMap declares a Report ID at offset %d", i)
		}
		size := int(tag & 0x03)
		if size == 3 {
			size = 4
		}
		i += 1 + size
	}
	if ReportMap[0] != 0x05 || ReportMap[1] != 0x0C {
		t.Errorf("ReportMap should start with Usage Page (Consumer), got % x", ReportMap[:2])
	}
	if ReportMap[len(ReportMap)-1] != 0xC0 {
		t.Errorf("ReportMap should end with End Collection, got 0x%02x", ReportMap[len(ReportMap)-1])
	}
}

func TestHIDInformation(t *testing.T) {
	want := []byte{0x11, 0x01, 0x00, 0x03}
	if got := HIDInformation(); !bytes.Equal(got, want) {
		t.Errorf("HIDInformation() = % x, want % x", got, want)
	}
}

func TestMediaKeyString(t *testing.T) {
	if VolumeUp.String() != "volume-up" {
		t.Errorf("VolumeUp.String() = %q", VolumeUp.String())
	}
	if got := MediaKey(0x0001).String(); got != "MediaKey(0x0001)" {
		t.Errorf("unknown key String() = %q", got)
	}
}
