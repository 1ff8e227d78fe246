package command

import (
	"encoding/binary"
	"fmt"

	"github.com/bucko909/powerpod/internal/newton"
)

// GetSpaceUsageResponse reports used storage as a fixed percentage;
// real hardware always answers with SpaceUsagePercent (SPEC_FULL §4.7).
type GetSpaceUsageResponse struct {
	UsedPercentage int16
}

// SpaceUsagePercent is the constant value the device reports.
const SpaceUsagePercent = 199

func DecodeGetSpaceUsageResponse(b []byte) (GetSpaceUsageResponse, error) {
	if len(b) != 2 {
		return GetSpaceUsageResponse{}, fmt.Errorf("command: GetSpaceUsage: want 2 bytes, got %d", len(b))
	}
	return GetSpaceUsageResponse{UsedPercentage: int16(binary.LittleEndian.Uint16(b))}, nil
}

func (r GetSpaceUsageResponse) Encode() []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(r.UsedPercentage))
	return b
}

// GetSerialNumberResponse is the device's 16-byte serial number.
type GetSerialNumberResponse struct {
	SerialNumber [16]byte
}

func DecodeGetSerialNumberResponse(b []byte) (GetSerialNumberResponse, error) {
	if len(b) != 16 {
		return GetSerialNumberResponse{}, fmt.Errorf("command: GetSerialNumber: want 16 bytes, got %d", len(b))
	}
	var r GetSerialNumberResponse
	copy(r.SerialNumber[:], b)
	return r, nil
}

func (r GetSerialNumberResponse) Encode() []byte {
	return append([]byte(nil), r.SerialNumber[:]...)
}

// GetOdometerResponse reports display units and the total distance
// ridden.
type GetOdometerResponse struct {
	UnitsType        int16
	One              int16 // observed constant 1
	Zero             int16 // observed constant 0
	OdometerTenthsKm int32
}

func DecodeGetOdometerResponse(b []byte) (GetOdometerResponse, error) {
	if len(b) != 10 {
		return GetOdometerResponse{}, fmt.Errorf("command: GetOdometer: want 10 bytes, got %d", len(b))
	}
	return GetOdometerResponse{
		UnitsType:        int16(binary.LittleEndian.Uint16(b[0:2])),
		One:              int16(binary.LittleEndian.Uint16(b[2:4])),
		Zero:             int16(binary.LittleEndian.Uint16(b[4:6])),
		OdometerTenthsKm: int32(binary.LittleEndian.Uint32(b[6:10])),
	}, nil
}

func (r GetOdometerResponse) Encode() []byte {
	b := make([]byte, 10)
	binary.LittleEndian.PutUint16(b[0:2], uint16(r.UnitsType))
	binary.LittleEndian.PutUint16(b[2:4], uint16(r.One))
	binary.LittleEndian.PutUint16(b[4:6], uint16(r.Zero))
	binary.LittleEndian.PutUint32(b[6:10], uint32(r.OdometerTenthsKm))
	return b
}

// GetFirmwareVersionResponse carries the device's firmware version,
// encoded per EncodeFirmwareVersion.
type GetFirmwareVersionResponse struct {
	Encoded int16
}

// EncodeFirmwareVersion maps a firmware version number to its wire
// encoding. Versions at or below 2.00 use version*100; later
// versions add a 500 offset, matching every mapping observed on real
// hardware (e.g. 6.12 -> 1112).
func EncodeFirmwareVersion(version float64) int16 {
	if version <= 2.00 {
		return int16(version*100 + 0.5)
	}
	return int16(version*100 + 500.5)
}

// DecodeFirmwareVersion is the inverse of EncodeFirmwareVersion.
func DecodeFirmwareVersion(encoded int16) float64 {
	if encoded <= 200 {
		return float64(encoded) / 100
	}
	return float64(int(encoded)-500) / 100
}

func DecodeGetFirmwareVersionResponse(b []byte) (GetFirmwareVersionResponse, error) {
	if len(b) != 2 {
		return GetFirmwareVersionResponse{}, fmt.Errorf("command: GetFirmwareVersion: want 2 bytes, got %d", len(b))
	}
	return GetFirmwareVersionResponse{Encoded: int16(binary.LittleEndian.Uint16(b))}, nil
}

func (r GetFirmwareVersionResponse) Encode() []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(r.Encoded))
	return b
}

// GetProfileNumberResponse reports which profile is current.
type GetProfileNumberResponse struct {
	Number int16
}

func DecodeGetProfileNumberResponse(b []byte) (GetProfileNumberResponse, error) {
	if len(b) != 2 {
		return GetProfileNumberResponse{}, fmt.Errorf("command: GetProfileNumber: want 2 bytes, got %d", len(b))
	}
	return GetProfileNumberResponse{Number: int16(binary.LittleEndian.Uint16(b))}, nil
}

func (r GetProfileNumberResponse) Encode() []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(r.Number))
	return b
}

// ProfileCount is the fixed number of stored profiles.
const ProfileCount = 4

// GetProfileDataResponse carries all four stored profiles, prefixed
// with the total byte count (SPEC_FULL §9 Open Question: resolved as
// an i32 total-byte count).
type GetProfileDataResponse struct {
	Profiles [ProfileCount]newton.Profile
}

func DecodeGetProfileDataResponse(b []byte) (GetProfileDataResponse, error) {
	want := 4 + ProfileCount*newton.ProfileSize
	if len(b) != want {
		return GetProfileDataResponse{}, fmt.Errorf("command: GetProfileData: want %d bytes, got %d", want, len(b))
	}
	total := int32(binary.LittleEndian.Uint32(b[0:4]))
	if int(total) != ProfileCount*newton.ProfileSize {
		return GetProfileDataResponse{}, fmt.Errorf("command: GetProfileData: declared length %d does not match %d profiles", total, ProfileCount)
	}
	var r GetProfileDataResponse
	for i := 0; i < ProfileCount; i++ {
		off := 4 + i*newton.ProfileSize
		p, err := newton.DecodeProfile(b[off : off+newton.ProfileSize])
		if err != nil {
			return GetProfileDataResponse{}, fmt.Errorf("command: GetProfileData: profile %d: %w", i, err)
		}
		r.Profiles[i] = p
	}
	return r, nil
}

func (r GetProfileDataResponse) Encode() []byte {
	b := make([]byte, 4, 4+ProfileCount*newton.ProfileSize)
	binary.LittleEndian.PutUint32(b[0:4], uint32(ProfileCount*newton.ProfileSize))
	for _, p := range r.Profiles {
		b = append(b, p.Encode()...)
	}
	return b
}

// GetFileResponse is a complete ride: header plus records.
type GetFileResponse struct {
	Ride newton.Ride
}

func DecodeGetFileResponse(b []byte) (GetFileResponse, error) {
	r, err := newton.DecodeRide(b)
	if err != nil {
		return GetFileResponse{}, fmt.Errorf("command: GetFile: %w", err)
	}
	return GetFileResponse{Ride: r}, nil
}

func (r GetFileResponse) Encode() []byte {
	return r.Ride.Encode()
}

// GetFileListResponse enumerates every stored ride as a compact
// RideHeader summary.
type GetFileListResponse struct {
	Headers []newton.RideHeader
}

func DecodeGetFileListResponse(b []byte) (GetFileListResponse, error) {
	if len(b) < 2 {
		return GetFileListResponse{}, fmt.Errorf("command: GetFileList: want at least 2 bytes, got %d", len(b))
	}
	count := int16(binary.LittleEndian.Uint16(b[0:2]))
	rest := b[2:]
	if len(rest) != int(count)*newton.RideHeaderSize {
		return GetFileListResponse{}, fmt.Errorf("command: GetFileList: declared %d rides but %d bytes follow", count, len(rest))
	}
	headers := make([]newton.RideHeader, 0, count)
	for i := 0; i < int(count); i++ {
		off := i * newton.RideHeaderSize
		h, err := newton.DecodeRideHeader(rest[off : off+newton.RideHeaderSize])
		if err != nil {
			return GetFileListResponse{}, fmt.Errorf("command: GetFileList: ride %d: %w", i, err)
		}
		headers = append(headers, h)
	}
	return GetFileListResponse{Headers: headers}, nil
}

func (r GetFileListResponse) Encode() []byte {
	b := make([]byte, 2, 2+len(r.Headers)*newton.RideHeaderSize)
	binary.LittleEndian.PutUint16(b[0:2], uint16(int16(len(r.Headers))))
	for _, h := range r.Headers {
		b = append(b, h.Encode()...)
	}
	return b
}

// UnknownResponse is the constant value returned for the UnknownCommand
// (0x22) identifier, whose purpose was never determined.
type UnknownResponse struct {
	A, B int16
}

func DefaultUnknownResponse() UnknownResponse {
	return UnknownResponse{A: 2, B: 0}
}

func DecodeUnknownResponse(b []byte) (UnknownResponse, error) {
	if len(b) != 4 {
		return UnknownResponse{}, fmt.Errorf("command: UnknownCommand: want 4 bytes, got %d", len(b))
	}
	return UnknownResponse{
		A: int16(binary.LittleEndian.Uint16(b[0:2])),
		B: int16(binary.LittleEndian.Uint16(b[2:4])),
	}, nil
}

func (r UnknownResponse) Encode() []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint16(b[0:2], uint16(r.A))
	binary.LittleEndian.PutUint16(b[2:4], uint16(r.B))
	return b
}

// GetAllScreensResponse carries all four profiles' screen layouts,
// prefixed with a total byte count (mirroring GetProfileData).
type GetAllScreensResponse struct {
	Screens [ProfileCount]newton.Screens
}

func DecodeGetAllScreensResponse(b []byte) (GetAllScreensResponse, error) {
	want := 4 + ProfileCount*newton.ScreensSize
	if len(b) != want {
		return GetAllScreensResponse{}, fmt.Errorf("command: GetAllScreens: want %d bytes, got %d", want, len(b))
	}
	var r GetAllScreensResponse
	for i := 0; i < ProfileCount; i++ {
		off := 4 + i*newton.ScreensSize
		s, err := newton.DecodeScreens(b[off : off+newton.ScreensSize])
		if err != nil {
			return GetAllScreensResponse{}, fmt.Errorf("command: GetAllScreens: screens %d: %w", i, err)
		}
		r.Screens[i] = s
	}
	return r, nil
}

func (r GetAllScreensResponse) Encode() []byte {
	b := make([]byte, 4, 4+ProfileCount*newton.ScreensSize)
	binary.LittleEndian.PutUint32(b[0:4], uint32(ProfileCount*newton.ScreensSize))
	for _, s := range r.Screens {
		b = append(b, s.Encode()...)
	}
	return b
}
