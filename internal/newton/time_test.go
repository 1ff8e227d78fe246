package newton

import "testing"

func TestTimeEncodeDecodeRoundTrip(t *testing.T) {
	want := Time{Secs: 59, Mins: 30, Hours: 23, Day: 31, Month: 12, MonthLength: 31, Year: 2025}
	wire := want.Encode()
	if len(wire) != TimeSize {
		t.Fatalf("Encode produced %d bytes, want %d", len(wire), TimeSize)
	}
	got, err := DecodeTime(wire)
	if err != nil {
		t.Fatalf("DecodeTime: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestTimeString(t *testing.T) {
	tm := Time{Secs: 5, Mins: 4, Hours: 3, Day: 2, Month: 1, Year: 2024}
	want := "2024-01-02 03:04:05"
	if got := tm.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestDecodeTimeWrongLength(t *testing.T) {
	if _, err := DecodeTime(make([]byte, TimeSize-1)); err == nil {
		t.Fatalf("expected error for short input")
	}
}
