package newton

import (
	"encoding/binary"
	"fmt"
)

// ScreensSize is the wire size of a per-profile Screens layout.
const ScreensSize = 18

// Screens is a profile's on-device screen layout. Its internal
// structure is undocumented upstream; it is modeled as nine
// little-endian slots and preserved verbatim rather than interpreted
// (SPEC_FULL §3, §9 Open Questions).
type Screens struct {
	Slots [9]uint16
}

// DecodeScreens parses an 18-byte wire Screens value.
func DecodeScreens(b []byte) (Screens, error) {
	if len(b) != ScreensSize {
		return Screens{}, fmt.Errorf("newton: Screens: want %d bytes, got %d", ScreensSize, len(b))
	}
	var s Screens
	for i := range s.Slots {
		s.Slots[i] = binary.LittleEndian.Uint16(b[i*2 : i*2+2])
	}
	return s, nil
}

// Encode writes s to its 18-byte wire form.
func (s Screens) Encode() []byte {
	b := make([]byte, ScreensSize)
	for i, v := range s.Slots {
		binary.LittleEndian.PutUint16(b[i*2:i*2+2], v)
	}
	return b
}
