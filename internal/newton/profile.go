package newton

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ProfileSize is the wire size of a Profile.
const ProfileSize = 82

// Profile is a persisted rider/bike configuration. Field names and
// units match how the device actually uses them where known; fields
// whose role is undocumented keep their observed wire name and must
// be preserved verbatim on round-trip rather than reinterpreted.
//
// SampleSmoothing bit 0x0800 must be set and 0x0020 must be cleared
// on the wire; switching "5s" vs "1s" smoothing toggles bit 0x0008.
type Profile struct {
	Unknown0              int16
	SampleSmoothing       uint16
	Unknown1              int16
	Null1                 int32
	Null2                 int16
	UserEdited            uint16
	TotalMassLb           int16
	WheelCircumferenceMm  int16
	Null3                 int16
	Unknown3              int16
	Unknown2              int16
	Unknown4              uint16
	Unknown5              int16
	Aero                  float32
	Fric                  float32
	Unknown6              float32
	Unknown7              float32
	Unknown8              int32
	WindScalingSqrt       float32
	TiltMult10            int16
	CalMassLb             int16
	RiderMassLb           int16
	Unknown9              int16
	FtpPerKiloIsh         int16
	FtpOver095            int16
	UnknownA              int16
	SpeedID               uint16
	CadenceID             uint16
	HrID                  uint16
	PowerID               uint16
	SpeedType             uint8
	CadenceType           uint8
	HrType                uint8
	PowerType             uint8
	PowerSmoothingSeconds uint16
	UnknownC              int16
}

// DefaultProfile returns the factory-reset profile values observed on
// real hardware.
func DefaultProfile() Profile {
	return Profile{
		Unknown0:              0x5c16,
		SampleSmoothing:       10251,
		Unknown1:              0x382b,
		TotalMassLb:           205,
		UserEdited:            32780,
		WheelCircumferenceMm:  2096,
		Aero:                  0.4889250099658966,
		Fric:                  11.310999870300293,
		WindScalingSqrt:       1.1510859727859497,
		TiltMult10:            -7,
		CalMassLb:             205,
		RiderMassLb:           180,
		Unknown9:              1803,
		FtpPerKiloIsh:         1,
		FtpOver095:            85,
		UnknownA:              769,
		PowerSmoothingSeconds: 1,
		UnknownC:              50,
		Unknown8:              1670644000,
	}
}

// DecodeProfile parses an 82-byte wire Profile value.
func DecodeProfile(b []byte) (Profile, error) {
	if len(b) != ProfileSize {
		return Profile{}, fmt.Errorf("newton: Profile: want %d bytes, got %d", ProfileSize, len(b))
	}
	var p Profile
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &p); err != nil {
		return Profile{}, fmt.Errorf("newton: decode Profile: %w", err)
	}
	return p, nil
}

// Encode writes p to its 82-byte wire form.
func (p Profile) Encode() []byte {
	buf := &bytes.Buffer{}
	buf.Grow(ProfileSize)
	// binary.Write on a fixed-field struct of basic types cannot
	// fail; error intentionally discarded.
	_ = binary.Write(buf, binary.LittleEndian, p)
	return buf.Bytes()
}
