package command

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/bucko909/powerpod/internal/newton"
)

// SetTimeRequest carries the device's new wall-clock time. The
// leading flag byte is required by this implementation (SPEC_FULL §9
// Open Question: some captures omit it; that short form is not
// accepted here).
type SetTimeRequest struct {
	Flag byte
	Time newton.Time
}

func DecodeSetTimeRequest(b []byte) (SetTimeRequest, error) {
	if len(b) != 1+newton.TimeSize {
		return SetTimeRequest{}, fmt.Errorf("command: SetTime: want %d bytes, got %d", 1+newton.TimeSize, len(b))
	}
	t, err := newton.DecodeTime(b[1:])
	if err != nil {
		return SetTimeRequest{}, err
	}
	return SetTimeRequest{Flag: b[0], Time: t}, nil
}

func (r SetTimeRequest) Encode() []byte {
	return append([]byte{r.Flag}, r.Time.Encode()...)
}

// SetUnitsRequest selects English (0) or Metric (1) display units.
type SetUnitsRequest struct {
	UnitsType int16
}

func DecodeSetUnitsRequest(b []byte) (SetUnitsRequest, error) {
	if len(b) != 2 {
		return SetUnitsRequest{}, fmt.Errorf("command: SetUnits: want 2 bytes, got %d", len(b))
	}
	return SetUnitsRequest{UnitsType: int16(binary.LittleEndian.Uint16(b))}, nil
}

func (r SetUnitsRequest) Encode() []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(r.UnitsType))
	return b
}

// SetOdometerRequest sets the odometer, in tenths of a kilometre.
type SetOdometerRequest struct {
	TenthsKm int32
}

func DecodeSetOdometerRequest(b []byte) (SetOdometerRequest, error) {
	if len(b) != 4 {
		return SetOdometerRequest{}, fmt.Errorf("command: SetOdometer: want 4 bytes, got %d", len(b))
	}
	return SetOdometerRequest{TenthsKm: int32(binary.LittleEndian.Uint32(b))}, nil
}

func (r SetOdometerRequest) Encode() []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(r.TenthsKm))
	return b
}

// SetSampleRateRequest's first field is always observed as zero; a
// nonzero value is a protocol violation (SPEC_FULL §4.7, §7).
type SetSampleRateRequest struct {
	Zero       int16
	SampleRate int16
}

func DecodeSetSampleRateRequest(b []byte) (SetSampleRateRequest, error) {
	if len(b) != 4 {
		return SetSampleRateRequest{}, fmt.Errorf("command: SetSampleRate: want 4 bytes, got %d", len(b))
	}
	r := SetSampleRateRequest{
		Zero:       int16(binary.LittleEndian.Uint16(b[0:2])),
		SampleRate: int16(binary.LittleEndian.Uint16(b[2:4])),
	}
	if r.Zero != 0 {
		return SetSampleRateRequest{}, fmt.Errorf("command: SetSampleRate: leading field must be 0, got %d", r.Zero)
	}
	return r, nil
}

func (r SetSampleRateRequest) Encode() []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint16(b[0:2], uint16(r.Zero))
	binary.LittleEndian.PutUint16(b[2:4], uint16(r.SampleRate))
	return b
}

// SetTrainerWeightsRequest is a cubic in road speed (mph) giving
// resistance watts: a0 + a1*v + a2*v^2 + a3*v^3.
type SetTrainerWeightsRequest struct {
	A0, A1, A2, A3 float32
}

func DecodeSetTrainerWeightsRequest(b []byte) (SetTrainerWeightsRequest, error) {
	if len(b) != 16 {
		return SetTrainerWeightsRequest{}, fmt.Errorf("command: SetTrainerWeights: want 16 bytes, got %d", len(b))
	}
	var r SetTrainerWeightsRequest
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &r); err != nil {
		return SetTrainerWeightsRequest{}, err
	}
	return r, nil
}

func (r SetTrainerWeightsRequest) Encode() []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, r)
	return buf.Bytes()
}

// IntervalRecord is one entry of a SetIntervalsRequest; its three
// fields are undocumented beyond their wire width.
type IntervalRecord struct {
	A, B, C int16
}

// SetIntervalsRequest configures the device's structured-workout
// interval table.
type SetIntervalsRequest struct {
	Flag    int8
	Records []IntervalRecord
}

func DecodeSetIntervalsRequest(b []byte) (SetIntervalsRequest, error) {
	if len(b) < 3 {
		return SetIntervalsRequest{}, fmt.Errorf("command: SetIntervals: want at least 3 bytes, got %d", len(b))
	}
	count := int16(binary.LittleEndian.Uint16(b[0:2]))
	flag := int8(b[2])
	rest := b[3:]
	if len(rest) != int(count)*6 {
		return SetIntervalsRequest{}, fmt.Errorf("command: SetIntervals: declared %d records but %d bytes follow", count, len(rest))
	}
	records := make([]IntervalRecord, 0, count)
	for i := 0; i < int(count); i++ {
		rec := rest[i*6 : i*6+6]
		records = append(records, IntervalRecord{
			A: int16(binary.LittleEndian.Uint16(rec[0:2])),
			B: int16(binary.LittleEndian.Uint16(rec[2:4])),
			C: int16(binary.LittleEndian.Uint16(rec[4:6])),
		})
	}
	return SetIntervalsRequest{Flag: flag, Records: records}, nil
}

func (r SetIntervalsRequest) Encode() []byte {
	b := make([]byte, 3+len(r.Records)*6)
	binary.LittleEndian.PutUint16(b[0:2], uint16(int16(len(r.Records))))
	b[2] = byte(r.Flag)
	for i, rec := range r.Records {
		off := 3 + i*6
		binary.LittleEndian.PutUint16(b[off:off+2], uint16(rec.A))
		binary.LittleEndian.PutUint16(b[off+2:off+4], uint16(rec.B))
		binary.LittleEndian.PutUint16(b[off+4:off+6], uint16(rec.C))
	}
	return b
}

// profileDataFields is the wire size of SetProfileData's payload:
// every Profile field except PowerSmoothingSeconds and UnknownC,
// which SetProfileData2 owns instead (SPEC_FULL §4.7).
const profileDataFields = newton.ProfileSize - 4

// SetProfileDataRequest carries a patch for the current profile: all
// of Profile's fields except PowerSmoothingSeconds and UnknownC.
// ApplyTo merges it into an existing profile, leaving those two
// fields untouched.
type SetProfileDataRequest struct {
	Patch newton.Profile
}

func DecodeSetProfileDataRequest(b []byte) (SetProfileDataRequest, error) {
	if len(b) != profileDataFields {
		return SetProfileDataRequest{}, fmt.Errorf("command: SetProfileData: want %d bytes, got %d", profileDataFields, len(b))
	}
	full := make([]byte, newton.ProfileSize)
	copy(full, b)
	p, err := newton.DecodeProfile(full)
	if err != nil {
		return SetProfileDataRequest{}, err
	}
	return SetProfileDataRequest{Patch: p}, nil
}

func (r SetProfileDataRequest) Encode() []byte {
	return r.Patch.Encode()[:profileDataFields]
}

// ApplyTo copies every field of the patch into target except
// PowerSmoothingSeconds and UnknownC. The device always forces
// SampleSmoothing bit 0x0800 set and 0x0020 clear regardless of what
// the host sent, matching the real device's documented behavior.
func (r SetProfileDataRequest) ApplyTo(target *newton.Profile) {
	powerSmoothing, unknownC := target.PowerSmoothingSeconds, target.UnknownC
	*target = r.Patch
	target.PowerSmoothingSeconds = powerSmoothing
	target.UnknownC = unknownC
	target.SampleSmoothing = (target.SampleSmoothing | 0x0800) &^ 0x0020
}

// SetProfileNumberRequest selects which of the four profiles is
// current.
type SetProfileNumberRequest struct {
	Number int16
}

func DecodeSetProfileNumberRequest(b []byte) (SetProfileNumberRequest, error) {
	if len(b) != 2 {
		return SetProfileNumberRequest{}, fmt.Errorf("command: SetProfileNumber: want 2 bytes, got %d", len(b))
	}
	return SetProfileNumberRequest{Number: int16(binary.LittleEndian.Uint16(b))}, nil
}

func (r SetProfileNumberRequest) Encode() []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(r.Number))
	return b
}

// SetProfileData2Request carries the two Profile fields SetProfileData
// leaves untouched.
type SetProfileData2Request struct {
	PowerSmoothingSeconds uint16
	UnknownC              int16
}

func DecodeSetProfileData2Request(b []byte) (SetProfileData2Request, error) {
	if len(b) != 4 {
		return SetProfileData2Request{}, fmt.Errorf("command: SetProfileData2: want 4 bytes, got %d", len(b))
	}
	return SetProfileData2Request{
		PowerSmoothingSeconds: binary.LittleEndian.Uint16(b[0:2]),
		UnknownC:              int16(binary.LittleEndian.Uint16(b[2:4])),
	}, nil
}

func (r SetProfileData2Request) Encode() []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint16(b[0:2], r.PowerSmoothingSeconds)
	binary.LittleEndian.PutUint16(b[2:4], uint16(r.UnknownC))
	return b
}

// GetFileRequest selects a ride by its index in GetFileList order.
type GetFileRequest struct {
	Index int16
}

func DecodeGetFileRequest(b []byte) (GetFileRequest, error) {
	if len(b) != 2 {
		return GetFileRequest{}, fmt.Errorf("command: GetFile: want 2 bytes, got %d", len(b))
	}
	return GetFileRequest{Index: int16(binary.LittleEndian.Uint16(b))}, nil
}

func (r GetFileRequest) Encode() []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(r.Index))
	return b
}

// SetScreensRequest replaces the current profile's on-device screen
// layout.
type SetScreensRequest struct {
	Screens newton.Screens
}

func DecodeSetScreensRequest(b []byte) (SetScreensRequest, error) {
	s, err := newton.DecodeScreens(b)
	if err != nil {
		return SetScreensRequest{}, fmt.Errorf("command: SetScreens: %w", err)
	}
	return SetScreensRequest{Screens: s}, nil
}

func (r SetScreensRequest) Encode() []byte {
	return r.Screens.Encode()
}
