package newton

import "testing"

func TestProfileEncodeDecodeRoundTrip(t *testing.T) {
	want := DefaultProfile()
	want.RiderMassLb = 165
	want.WheelCircumferenceMm = 2105

	wire := want.Encode()
	if len(wire) != ProfileSize {
		t.Fatalf("Encode produced %d bytes, want %d", len(wire), ProfileSize)
	}
	got, err := DecodeProfile(wire)
	if err != nil {
		t.Fatalf("DecodeProfile: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestDecodeProfileWrongLength(t *testing.T) {
	if _, err := DecodeProfile(make([]byte, ProfileSize-1)); err == nil {
		t.Fatalf("expected error for short input")
	}
}

func TestDefaultProfileMatchesObservedFactoryValues(t *testing.T) {
	p := DefaultProfile()
	if p.TotalMassLb != 205 || p.CalMassLb != 205 {
		t.Fatalf("default mass fields changed: %+v", p)
	}
	if p.RiderMassLb != 180 {
		t.Fatalf("default RiderMassLb = %d, want 180", p.RiderMassLb)
	}
	if p.WheelCircumferenceMm != 2096 {
		t.Fatalf("default WheelCircumferenceMm = %d, want 2096", p.WheelCircumferenceMm)
	}
}
