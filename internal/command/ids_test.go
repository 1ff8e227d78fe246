package command

import "testing"

func TestIDStringKnownAndUnknown(t *testing.T) {
	if got := SetTime.String(); got != "SetTime" {
		t.Fatalf("SetTime.String() = %q, want %q", got, "SetTime")
	}
	if got := ID(0xFF).String(); got != "ID(0xff)" {
		t.Fatalf("ID(0xFF).String() = %q, want %q", got, "ID(0xff)")
	}
}

func TestHasResponse(t *testing.T) {
	responders := []ID{GetSpaceUsage, GetSerialNumber, GetOdometer, GetFirmwareVersion,
		GetProfileNumber, GetProfileData, GetFile, GetFileList, Unknown, GetAllScreens}
	for _, id := range responders {
		if !HasResponse(id) {
			t.Errorf("HasResponse(%s) = false, want true", id)
		}
	}
	ackOnly := []ID{SetTime, EraseAll, SetUnits, SetOdometer, SetSampleRate,
		SetTrainerWeights, SetIntervals, SetProfileData, SetProfileNumber, SetProfileData2, SetScreens}
	for _, id := range ackOnly {
		if HasResponse(id) {
			t.Errorf("HasResponse(%s) = true, want false", id)
		}
	}
}
