package command

import (
	"testing"

	"github.com/bucko909/powerpod/internal/newton"
)

func TestEncodeDecodeFirmwareVersion(t *testing.T) {
	cases := []struct {
		version float64
		encoded int16
	}{
		{1.50, 150},
		{2.00, 200},
		{6.12, 1112},
	}
	for _, tc := range cases {
		if got := EncodeFirmwareVersion(tc.version); got != tc.encoded {
			t.Fatalf("EncodeFirmwareVersion(%v) = %d, want %d", tc.version, got, tc.encoded)
		}
		if got := DecodeFirmwareVersion(tc.encoded); got != tc.version {
			t.Fatalf("DecodeFirmwareVersion(%d) = %v, want %v", tc.encoded, got, tc.version)
		}
	}
}

func TestGetFirmwareVersionResponseRoundTrip(t *testing.T) {
	want := GetFirmwareVersionResponse{Encoded: EncodeFirmwareVersion(6.12)}
	got, err := DecodeGetFirmwareVersionResponse(want.Encode())
	if err != nil {
		t.Fatalf("DecodeGetFirmwareVersionResponse: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestGetSerialNumberResponseRoundTrip(t *testing.T) {
	var want GetSerialNumberResponse
	for i := range want.SerialNumber {
		want.SerialNumber[i] = byte(i)
	}
	got, err := DecodeGetSerialNumberResponse(want.Encode())
	if err != nil {
		t.Fatalf("DecodeGetSerialNumberResponse: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestGetOdometerResponseRoundTrip(t *testing.T) {
	want := GetOdometerResponse{UnitsType: 1, One: 1, Zero: 0, OdometerTenthsKm: 12345}
	got, err := DecodeGetOdometerResponse(want.Encode())
	if err != nil {
		t.Fatalf("DecodeGetOdometerResponse: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestGetProfileDataResponseRoundTrip(t *testing.T) {
	var want GetProfileDataResponse
	for i := range want.Profiles {
		p := newton.DefaultProfile()
		p.RiderMassLb = int16(150 + i)
		want.Profiles[i] = p
	}
	got, err := DecodeGetProfileDataResponse(want.Encode())
	if err != nil {
		t.Fatalf("DecodeGetProfileDataResponse: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestDecodeGetProfileDataResponseRejectsBadLengthPrefix(t *testing.T) {
	var want GetProfileDataResponse
	wire := want.Encode()
	wire[0] ^= 0xFF // corrupt the declared length prefix
	if _, err := DecodeGetProfileDataResponse(wire); err == nil {
		t.Fatalf("expected error for mismatched length prefix")
	}
}

func TestGetFileListResponseRoundTripEmpty(t *testing.T) {
	want := GetFileListResponse{}
	wire := want.Encode()
	if len(wire) != 2 || wire[0] != 0 || wire[1] != 0 {
		t.Fatalf("empty GetFileListResponse.Encode() = %x, want 00 00", wire)
	}
	got, err := DecodeGetFileListResponse(wire)
	if err != nil {
		t.Fatalf("DecodeGetFileListResponse: %v", err)
	}
	if len(got.Headers) != 0 {
		t.Fatalf("expected no headers, got %d", len(got.Headers))
	}
}

func TestGetFileListResponseRoundTrip(t *testing.T) {
	want := GetFileListResponse{Headers: []newton.RideHeader{
		{Unknown0: 1, StartTime: newton.Time{Year: 2025, Month: 6, Day: 1}, DistanceMetres: 1000},
		{Unknown0: 2, StartTime: newton.Time{Year: 2025, Month: 6, Day: 2}, DistanceMetres: 2000},
	}}
	got, err := DecodeGetFileListResponse(want.Encode())
	if err != nil {
		t.Fatalf("DecodeGetFileListResponse: %v", err)
	}
	if len(got.Headers) != len(want.Headers) {
		t.Fatalf("got %d headers, want %d", len(got.Headers), len(want.Headers))
	}
	for i := range want.Headers {
		if got.Headers[i] != want.Headers[i] {
			t.Fatalf("header %d mismatch: got %+v, want %+v", i, got.Headers[i], want.Headers[i])
		}
	}
}

func TestUnknownResponseDefault(t *testing.T) {
	want := DefaultUnknownResponse()
	got, err := DecodeUnknownResponse(want.Encode())
	if err != nil {
		t.Fatalf("DecodeUnknownResponse: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
	if want.A != 2 || want.B != 0 {
		t.Fatalf("DefaultUnknownResponse() = %+v, want {A:2 B:0}", want)
	}
}

func TestGetAllScreensResponseRoundTrip(t *testing.T) {
	var want GetAllScreensResponse
	for i := range want.Screens {
		want.Screens[i] = newton.Screens{Slots: [9]uint16{uint16(i), 1, 2, 3, 4, 5, 6, 7, 8}}
	}
	got, err := DecodeGetAllScreensResponse(want.Encode())
	if err != nil {
		t.Fatalf("DecodeGetAllScreensResponse: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}
