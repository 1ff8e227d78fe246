// Package newton implements the PowerPod device's typed data model:
// time stamps, rider profiles, ride headers and telemetry records,
// screen layouts, and the physical-quantity derivations computed from
// a telemetry record.
package newton

import (
	"encoding/binary"
	"fmt"
)

// TimeSize is the wire size of a Time value.
const TimeSize = 8

// Time is the device's wall-clock representation: little-endian,
// signed single-byte fields plus a two-byte year.
type Time struct {
	Secs        int8
	Mins        int8
	Hours       int8
	Day         int8
	Month       int8
	MonthLength int8
	Year        int16
}

// DecodeTime parses an 8-byte wire Time value.
func DecodeTime(b []byte) (Time, error) {
	if len(b) != TimeSize {
		return Time{}, fmt.Errorf("newton: Time: want %d bytes, got %d", TimeSize, len(b))
	}
	return Time{
		Secs:        int8(b[0]),
		Mins:        int8(b[1]),
		Hours:       int8(b[2]),
		Day:         int8(b[3]),
		Month:       int8(b[4]),
		MonthLength: int8(b[5]),
		Year:        int16(binary.LittleEndian.Uint16(b[6:8])),
	}, nil
}

// String formats t as an ISO-ish timestamp using its own fields
// (there is no timezone; the device has none).
func (t Time) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", t.Year, t.Month, t.Day, t.Hours, t.Mins, t.Secs)
}

// Encode writes t to its 8-byte wire form.
func (t Time) Encode() []byte {
	b := make([]byte, TimeSize)
	b[0] = byte(t.Secs)
	b[1] = byte(t.Mins)
	b[2] = byte(t.Hours)
	b[3] = byte(t.Day)
	b[4] = byte(t.Month)
	b[5] = byte(t.MonthLength)
	binary.LittleEndian.PutUint16(b[6:8], uint16(t.Year))
	return b
}
