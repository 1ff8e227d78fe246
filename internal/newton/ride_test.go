package newton

import "testing"

func sampleRecords() []Record {
	return []Record{
		RideData{ElevationFeet: 100, TemperatureFarenheit: 70, PowerWatts: 200, SpeedMph: 15.0},
		RideData{ElevationFeet: 110, TemperatureFarenheit: 72, PowerWatts: 220, SpeedMph: 16.0},
		RideDataPaused{Time: Time{Year: 2024, Month: 6, Day: 1}},
		RideData{ElevationFeet: 120, TemperatureFarenheit: 74, PowerWatts: 180, SpeedMph: 14.0},
	}
}

func TestRideEncodeDecodeRoundTrip(t *testing.T) {
	want := MakeRide(sampleRecords())
	want.Unknown0 = 3
	want.StartTime = Time{Year: 2026, Month: 7, Day: 31, Hours: 9}

	wire := want.Encode()
	if len(wire) != want.EncodedSize() {
		t.Fatalf("Encode produced %d bytes, want %d", len(wire), want.EncodedSize())
	}
	got, err := DecodeRide(wire)
	if err != nil {
		t.Fatalf("DecodeRide: %v", err)
	}
	if len(got.Records) != len(want.Records) {
		t.Fatalf("decoded %d records, want %d", len(got.Records), len(want.Records))
	}
	for i := range got.Records {
		if got.Records[i] != want.Records[i] {
			t.Fatalf("record %d mismatch: got %+v, want %+v", i, got.Records[i], want.Records[i])
		}
	}
	if got.StartTime != want.StartTime {
		t.Fatalf("StartTime mismatch: got %+v, want %+v", got.StartTime, want.StartTime)
	}
	if got.Size != int32(len(want.Records)) {
		t.Fatalf("Size = %d, want %d", got.Size, len(want.Records))
	}
}

func TestMakeRideComputesAverageTemperatureAndEnergy(t *testing.T) {
	r := MakeRide(sampleRecords())
	// (70+72+74)/3 rounded = 72
	if r.AverageTemperatureFarenheit != 72 {
		t.Fatalf("AverageTemperatureFarenheit = %d, want 72", r.AverageTemperatureFarenheit)
	}
	if r.InitialElevationFeet != 100 {
		t.Fatalf("InitialElevationFeet = %v, want 100", r.InitialElevationFeet)
	}
	wantEnergy := float32(roundDiv(200+220+180, 1000))
	if r.EnergyKJ != wantEnergy {
		t.Fatalf("EnergyKJ = %v, want %v", r.EnergyKJ, wantEnergy)
	}
}

func TestMakeRideEmpty(t *testing.T) {
	r := MakeRide(nil)
	if r.Size != 0 {
		t.Fatalf("Size = %d, want 0", r.Size)
	}
	if len(r.Records) != 0 {
		t.Fatalf("Records = %v, want empty", r.Records)
	}
}

func TestRoundDiv(t *testing.T) {
	cases := []struct{ a, b, want int64 }{
		{7, 2, 4},
		{-7, 2, -4},
		{6, 2, 3},
		{1, 0, 0},
	}
	for _, tc := range cases {
		if got := roundDiv(tc.a, tc.b); got != tc.want {
			t.Fatalf("roundDiv(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestRideHeaderEncodeDecodeRoundTrip(t *testing.T) {
	want := RideHeader{Unknown0: 7, StartTime: Time{Year: 2026, Month: 1, Day: 1}, DistanceMetres: 12345.5}
	wire := want.Encode()
	if len(wire) != RideHeaderSize {
		t.Fatalf("Encode produced %d bytes, want %d", len(wire), RideHeaderSize)
	}
	got, err := DecodeRideHeader(wire)
	if err != nil {
		t.Fatalf("DecodeRideHeader: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestRideHeaderFromRide(t *testing.T) {
	r := MakeRide([]Record{
		RideData{SpeedMph: 10.0},
		RideData{SpeedMph: 10.0},
	})
	h := r.Header()
	want := float32(10.0*1602.0/3600.0*2)
	if h.DistanceMetres != want {
		t.Fatalf("Header().DistanceMetres = %v, want %v", h.DistanceMetres, want)
	}
}

func TestDecodeRideRejectsSizeMismatch(t *testing.T) {
	r := MakeRide(sampleRecords())
	wire := r.Encode()
	if _, err := DecodeRide(wire[:len(wire)-1]); err == nil {
		t.Fatalf("expected error when record bytes do not match declared size")
	}
}

func TestDecodeRideRejectsShortHeader(t *testing.T) {
	if _, err := DecodeRide(make([]byte, RideHeaderFieldsSize-1)); err == nil {
		t.Fatalf("expected error for short header")
	}
}
