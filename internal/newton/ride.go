package newton

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// RideHeaderSize is the wire size of a RideHeader, the compact
// per-ride summary returned by GetFileList.
const RideHeaderSize = 14

// RideHeader is the 14-byte summary of one ride: an undocumented
// leading field, the ride's start time, and its total distance.
type RideHeader struct {
	Unknown0       int16
	StartTime      Time
	DistanceMetres float32
}

// DecodeRideHeader parses a 14-byte wire RideHeader.
func DecodeRideHeader(b []byte) (RideHeader, error) {
	if len(b) != RideHeaderSize {
		return RideHeader{}, fmt.Errorf("newton: RideHeader: want %d bytes, got %d", RideHeaderSize, len(b))
	}
	t, err := DecodeTime(b[2:10])
	if err != nil {
		return RideHeader{}, err
	}
	return RideHeader{
		Unknown0:       int16(binary.LittleEndian.Uint16(b[0:2])),
		StartTime:      t,
		DistanceMetres: decodeFloat32(b[10:14]),
	}, nil
}

// Encode writes h to its 14-byte wire form.
func (h RideHeader) Encode() []byte {
	b := make([]byte, RideHeaderSize)
	binary.LittleEndian.PutUint16(b[0:2], uint16(h.Unknown0))
	copy(b[2:10], h.StartTime.Encode())
	encodeFloat32(b[10:14], h.DistanceMetres)
	return b
}

// RideHeaderFieldsSize is the wire size of a Ride's fixed header,
// not including its records.
const RideHeaderFieldsSize = 82

// Ride is one recording session: an 82-byte fixed header describing
// the session and environment, followed by its per-second records
// (normal telemetry or paused markers).
type Ride struct {
	Unknown0                    int16
	Size                        int32 // record count; set by MakeRide and DecodeRide; Encode writes len(Records) instead
	TotalMassLb                 float32
	EnergyKJ                    float32
	Aero                        float32
	Fric                        float32
	InitialElevationFeet        float32
	ElevationGainFeet           float32
	WheelCircumferenceMm        float32
	Unknown1                    int16
	Unknown2                    int16
	StartTime                   Time
	PressurePa                  int32
	Cm                          float32
	AverageTemperatureFarenheit int16
	WindScalingSqrt             float32
	RidingTiltTimes10           int16
	CalMassLb                   int16
	Unknown5                    int16
	WindTubePressureOffset      int16 // wire-biased: encoded = value + 1024
	Unknown7                    int32
	ReferenceTemperatureKelvin  int16
	ReferencePressurePa         int32
	Unknown9                    int16
	UnknownA                    int16

	Records []Record
}

// DefaultRide returns the header field defaults observed on real
// hardware, with zero records.
func DefaultRide() Ride {
	return Ride{
		Unknown0:                   17,
		TotalMassLb:                235,
		Aero:                       0.384,
		Fric:                       12.0,
		WheelCircumferenceMm:       2136.0,
		Unknown1:                   15,
		Unknown2:                   1,
		StartTime:                  Time{Day: 1, Month: 1, MonthLength: 31, Year: 2000},
		PressurePa:                 101325,
		Cm:                         1.0204,
		AverageTemperatureFarenheit: 73,
		WindScalingSqrt:            1.0,
		CalMassLb:                  235,
		Unknown5:                   88,
		WindTubePressureOffset:     620,
		ReferenceTemperatureKelvin: 288,
		ReferencePressurePa:        101325,
		Unknown9:                   1,
		UnknownA:                   50,
	}
}

// MakeRide builds a Ride around data, computing the derived header
// fields (record count, initial elevation, average temperature,
// energy) the way the device does when a recording session ends.
// All other header fields take on their DefaultRide() values; set
// them on the result afterward to override.
func MakeRide(data []Record) Ride {
	r := DefaultRide()
	r.Records = data
	r.Size = int32(len(data))
	if len(data) == 0 {
		return r
	}

	var tempSum, powerSum int64
	tempCount := 0
	firstElevationSet := false
	for _, rec := range data {
		n, ok := rec.(RideData)
		if !ok {
			continue
		}
		tempSum += int64(n.TemperatureFarenheit)
		tempCount++
		powerSum += int64(n.PowerWatts)
		if !firstElevationSet {
			r.InitialElevationFeet = float32(n.ElevationFeet)
			firstElevationSet = true
		}
	}
	if tempCount > 0 {
		r.AverageTemperatureFarenheit = int16(roundDiv(tempSum, int64(tempCount)))
	}
	r.EnergyKJ = float32(roundDiv(powerSum, 1000))
	return r
}

func roundDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	if a < 0 {
		return -((-a + b/2) / b)
	}
	return (a + b/2) / b
}

// Header summarizes r as the 14-byte RideHeader reported by
// GetFileList: total distance is the sum of each normal record's
// speed (mph, converted via 1 mph = 1602/3600 m/s at 1 Hz sampling).
func (r Ride) Header() RideHeader {
	var distance float64
	for _, rec := range r.Records {
		if n, ok := rec.(RideData); ok {
			distance += n.SpeedMph * 1602.0 / 3600.0
		}
	}
	return RideHeader{
		Unknown0:       r.Unknown0,
		StartTime:      r.StartTime,
		DistanceMetres: float32(distance),
	}
}

// EncodedSize returns the total wire size of r: its 82-byte header
// plus RecordSize bytes per record.
func (r Ride) EncodedSize() int {
	return RideHeaderFieldsSize + len(r.Records)*RecordSize
}

// Encode writes r to its wire form: the 82-byte header (with Size set
// to len(r.Records)) followed by each record's 15 bytes in order.
func (r Ride) Encode() []byte {
	buf := &bytes.Buffer{}
	buf.Grow(r.EncodedSize())

	write16 := func(v int16) { binary.Write(buf, binary.LittleEndian, v) }
	writeU16 := func(v uint16) { binary.Write(buf, binary.LittleEndian, v) }
	write32 := func(v int32) { binary.Write(buf, binary.LittleEndian, v) }
	writeF32 := func(v float32) { binary.Write(buf, binary.LittleEndian, v) }

	write16(r.Unknown0)
	write32(int32(len(r.Records)))
	writeF32(r.TotalMassLb)
	writeF32(r.EnergyKJ)
	writeF32(r.Aero)
	writeF32(r.Fric)
	writeF32(r.InitialElevationFeet)
	writeF32(r.ElevationGainFeet)
	writeF32(r.WheelCircumferenceMm)
	write16(r.Unknown1)
	write16(r.Unknown2)
	buf.Write(r.StartTime.Encode())
	write32(r.PressurePa)
	writeF32(r.Cm)
	write16(r.AverageTemperatureFarenheit)
	writeF32(r.WindScalingSqrt)
	write16(r.RidingTiltTimes10)
	write16(r.CalMassLb)
	write16(r.Unknown5)
	writeU16(uint16(r.WindTubePressureOffset + 1024))
	write32(r.Unknown7)
	write16(r.ReferenceTemperatureKelvin)
	write32(r.ReferencePressurePa)
	write16(r.Unknown9)
	write16(r.UnknownA)

	for _, rec := range r.Records {
		buf.Write(rec.Encode())
	}
	return buf.Bytes()
}

// DecodeRide parses a complete wire Ride: an 82-byte header followed
// by exactly the declared Size records.
func DecodeRide(b []byte) (Ride, error) {
	if len(b) < RideHeaderFieldsSize {
		return Ride{}, fmt.Errorf("newton: Ride: header needs %d bytes, got %d", RideHeaderFieldsSize, len(b))
	}
	h := b[:RideHeaderFieldsSize]
	r := Ride{}

	r.Unknown0 = int16(binary.LittleEndian.Uint16(h[0:2]))
	size := int32(binary.LittleEndian.Uint32(h[2:6]))
	r.Size = size
	r.TotalMassLb = decodeFloat32(h[6:10])
	r.EnergyKJ = decodeFloat32(h[10:14])
	r.Aero = decodeFloat32(h[14:18])
	r.Fric = decodeFloat32(h[18:22])
	r.InitialElevationFeet = decodeFloat32(h[22:26])
	r.ElevationGainFeet = decodeFloat32(h[26:30])
	r.WheelCircumferenceMm = decodeFloat32(h[30:34])
	r.Unknown1 = int16(binary.LittleEndian.Uint16(h[34:36]))
	r.Unknown2 = int16(binary.LittleEndian.Uint16(h[36:38]))
	t, err := DecodeTime(h[38:46])
	if err != nil {
		return Ride{}, err
	}
	r.StartTime = t
	r.PressurePa = int32(binary.LittleEndian.Uint32(h[46:50]))
	r.Cm = decodeFloat32(h[50:54])
	r.AverageTemperatureFarenheit = int16(binary.LittleEndian.Uint16(h[54:56]))
	r.WindScalingSqrt = decodeFloat32(h[56:60])
	r.RidingTiltTimes10 = int16(binary.LittleEndian.Uint16(h[60:62]))
	r.CalMassLb = int16(binary.LittleEndian.Uint16(h[62:64]))
	r.Unknown5 = int16(binary.LittleEndian.Uint16(h[64:66]))
	r.WindTubePressureOffset = int16(binary.LittleEndian.Uint16(h[66:68])) - 1024
	r.Unknown7 = int32(binary.LittleEndian.Uint32(h[68:72]))
	r.ReferenceTemperatureKelvin = int16(binary.LittleEndian.Uint16(h[72:74]))
	r.ReferencePressurePa = int32(binary.LittleEndian.Uint32(h[74:78]))
	r.Unknown9 = int16(binary.LittleEndian.Uint16(h[78:80]))
	r.UnknownA = int16(binary.LittleEndian.Uint16(h[80:82]))

	rest := b[RideHeaderFieldsSize:]
	if int(size)*RecordSize != len(rest) {
		return Ride{}, fmt.Errorf("newton: Ride: declared %d records but %d bytes follow (want %d)", size, len(rest), int(size)*RecordSize)
	}
	records := make([]Record, 0, size)
	for i := 0; i < int(size); i++ {
		rec, err := DecodeRecord(rest[i*RecordSize : (i+1)*RecordSize])
		if err != nil {
			return Ride{}, fmt.Errorf("newton: Ride: record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	r.Records = records
	return r, nil
}

func decodeFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func encodeFloat32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}
