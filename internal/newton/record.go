package newton

import "fmt"

// RecordSize is the wire size of one ride record slot (either a
// RideData or a RideDataPaused).
const RecordSize = 15

// Record is one 15-byte ride record slot: either telemetry (RideData)
// or a marker for a paused interval (RideDataPaused).
type Record interface {
	Encode() []byte
}

// recordField names one bit-packed field of RideData and its width.
// Order and width are load-bearing: they define the 120-bit layout.
// Kept as a table (rather than inlined) because this is the one
// entity with enough variable-width fields that the layout needs a
// single place to audit.
type recordField struct {
	name  string
	width int
}

var recordFields = []recordField{
	{"elevation_feet", 16},
	{"cadence", 8},
	{"heart_rate", 8},
	{"temperature_farenheit", 8},
	{"unknown_0", 9},
	{"tilt", 10},
	{"speed_mph", 10},
	{"wind_tube_pressure_difference", 10},
	{"power_watts", 11},
	{"dfpm_power_watts", 11},
	{"acceleration", 10},
	{"stopped_flag", 1},
	{"unknown_3", 8},
}

func init() {
	sum := 0
	for _, f := range recordFields {
		sum += f.width
	}
	if sum != RecordSize*8 {
		panic(fmt.Sprintf("newton: record field table sums to %d bits, want %d", sum, RecordSize*8))
	}
}

// RideData is one second of telemetry: the bit-packed record
// described by recordFields, decoded into typed, physically scaled
// fields.
type RideData struct {
	ElevationFeet                int32
	Cadence                      uint8
	HeartRate                    uint8
	TemperatureFarenheit         int32
	Unknown0                     int32
	Tilt                         float64
	SpeedMph                     float64
	WindTubePressureDifference   uint32
	PowerWatts                   uint32
	DfpmPowerWatts               uint32
	Acceleration                 int32
	StoppedFlag                  uint8
	Unknown3                     uint8
}

// RideDataPaused marks a gap in recording: the same 15-byte slot as
// RideData, but beginning with six 0xFF bytes, followed by a
// timestamp and one signed byte.
type RideDataPaused struct {
	Time     Time
	Unknown3 int8
}

// DecodeRecord decodes one 15-byte record slot, dispatching to
// RideDataPaused if the first six bytes are all 0xFF.
func DecodeRecord(b []byte) (Record, error) {
	if len(b) != RecordSize {
		return nil, fmt.Errorf("newton: record: want %d bytes, got %d", RecordSize, len(b))
	}
	paused := true
	for i := 0; i < 6; i++ {
		if b[i] != 0xFF {
			paused = false
			break
		}
	}
	if paused {
		t, err := DecodeTime(b[6:14])
		if err != nil {
			return nil, fmt.Errorf("newton: paused record: %w", err)
		}
		return RideDataPaused{Time: t, Unknown3: int8(b[14])}, nil
	}
	return decodeRideData(b), nil
}

func decodeRideData(b []byte) RideData {
	raw := make([]uint64, len(recordFields))
	offset := 0
	for i, f := range recordFields {
		raw[i] = readBits(b, offset, f.width)
		offset += f.width
	}
	return RideData{
		ElevationFeet:              int32(toSigned(uint64(swapEndian16(uint16(raw[0]))), 16)),
		Cadence:                    uint8(raw[1]),
		HeartRate:                  uint8(raw[2]),
		TemperatureFarenheit:       int32(raw[3]) - 100,
		Unknown0:                  int32(toSigned(raw[4], 9)),
		Tilt:                       float64(toSigned(raw[5], 10)) / 10.0,
		SpeedMph:                   float64(raw[6]) / 10.0,
		WindTubePressureDifference: uint32(raw[7]),
		PowerWatts:                 uint32(raw[8]),
		DfpmPowerWatts:             uint32(raw[9]),
		Acceleration:               int32(toSigned(raw[10], 10)),
		StoppedFlag:                uint8(raw[11]),
		Unknown3:                   uint8(raw[12]),
	}
}

// Encode writes r to its 15-byte wire form.
func (r RideData) Encode() []byte {
	raw := []uint64{
		uint64(swapEndian16(uint16(toUnsigned(int64(r.ElevationFeet), 16)))),
		uint64(r.Cadence),
		uint64(r.HeartRate),
		uint64(r.TemperatureFarenheit + 100),
		toUnsigned(int64(r.Unknown0), 9),
		toUnsigned(int64(r.Tilt*10), 10),
		uint64(r.SpeedMph * 10),
		uint64(r.WindTubePressureDifference),
		uint64(r.PowerWatts),
		uint64(r.DfpmPowerWatts),
		toUnsigned(int64(r.Acceleration), 10),
		uint64(r.StoppedFlag),
		uint64(r.Unknown3),
	}
	b := make([]byte, RecordSize)
	offset := 0
	for i, f := range recordFields {
		writeBits(b, offset, f.width, raw[i])
		offset += f.width
	}
	return b
}

// Encode writes r to its 15-byte wire form.
func (r RideDataPaused) Encode() []byte {
	b := make([]byte, RecordSize)
	for i := 0; i < 6; i++ {
		b[i] = 0xFF
	}
	copy(b[6:14], r.Time.Encode())
	b[14] = byte(r.Unknown3)
	return b
}
