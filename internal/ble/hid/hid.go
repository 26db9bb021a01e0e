// Package hid encodes the HID-over-GATT payloads for a consumer-control
// (media key) remote: the report map, the HID information value and the
// input reports sent on every key tap.
package hid

import (
	"encoding/binary"
	"fmt"
)

// MediaKey is a usage ID on the Consumer usage page (0x0C).
type MediaKey uint16

const (
	Mute       MediaKey = 0x00E2
	VolumeUp   MediaKey = 0x00E9
	VolumeDown MediaKey = 0x00EA
	PlayPause  MediaKey = 0x00CD
	NextTrack  MediaKey = 0x00B5
	PrevTrack  MediaKey = 0x00B6
)

func (k MediaKey) String() string {
	switch k {
	case Mute:
		return "mute"
	case VolumeUp:
		return "volume-up"
	case VolumeDown:
		return "volume-down"
	case PlayPause:
		return "play-pause"
	case NextTrack:
		return "next-track"
	case PrevTrack:
		return "prev-track"
	default:
		return fmt.Sprintf("MediaKey(0x%04x)", uint16(k))
	}
}

// ReportLen is the size of a consumer-control input report in bytes.
const ReportLen = 2

// ReportMap describes a single consumer-control application collection
// with one 16-bit usage slot. A zero usage means "no key pressed". It
// declares no Report ID, so hosts need no Report Reference descriptor to
// bind the one input report to its characteristic.
var ReportMap = []byte{
	0x05, 0x0C,       // Usage Page (Consumer)
	0x09, 0x01,       // Usage (Consumer Control)
	0xA1, 0x01,       // Collection (Application)
	0x15, 0x00,       //   Logical Minimum (0)
	0x26, 0xFF, 0x03, //   Logical Maximum (1023)
	0x19, 0x00,       //   Usage Minimum (0)
	0x2A, 0xFF, 0x03, //   Usage Maximum (1023)
	0x75, 0x10,       //   Report Size (16)
	0x95, 0x01,       //   Report Count (1)
	0x81, 0x00,       //   Input (Data, Array, Absolute)
	0xC0,             // End Collection
}

// HID Information flags.
const (
	FlagRemoteWake          = 0x01
	FlagNormallyConnectable = 0x02
)

// HIDInformation returns the HID Information characteristic value:
//
//	bcdHID       uint16 (1.11)
//	bCountryCode uint8  (not localized)
//	Flags        uint8
func HIDInformation() []byte {
	buf := binary.LittleEndian.AppendUint16(nil, 0x0111)
	return append(buf, 0x00, FlagRemoteWake|FlagNormallyConnectable)
}

// ConsumerReport encodes an input report with key held down.
func ConsumerReport(key MediaKey) []byte {
	return binary.LittleEndian.AppendUint16(make([]byte, 0, ReportLen), uint16(key))
}

// ReleaseReport encodes an input report with no key held down.
func ReleaseReport() []byte {
	return make([]byte, ReportLen)
}

// ParseConsumerReport decodes an input report back to its usage.
func ParseConsumerReport(report []byte) (MediaKey, error) {
	if len(report) != ReportLen {
		return 0, fmt.Errorf("hid: report must be %d bytes, got %d", ReportLen, len(report))
	}
	return MediaKey(binary.LittleEndian.Uint16(report)), nil
}
