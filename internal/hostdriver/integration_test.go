package hostdriver_test

import (
	"context"
	"testing"
	"time"

	"github.com/bucko909/powerpod/internal/command"
	"github.com/bucko909/powerpod/internal/device"
	"github.com/bucko909/powerpod/internal/hostdriver"
	"github.com/bucko909/powerpod/internal/link"
	"github.com/bucko909/powerpod/internal/newton"
	"github.com/bucko909/powerpod/internal/transport"
)

// newSession wires a host driver and a device simulator together over
// an in-memory loopback pair, mirroring how the simulate CLI and a
// real host talk over a serial port. The simulator runs in the
// background for the duration of the test.
func newSession(t *testing.T, state *device.State) (*link.Protocol, func()) {
	t.Helper()
	hostCh, deviceCh := transport.NewLoopbackPair()
	hostProto := link.New(hostCh, link.RoleHost, nil)
	deviceProto := link.New(deviceCh, link.RoleDevice, nil)

	sim := device.NewSimulator(deviceProto, state, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sim.Run(ctx)
		close(done)
	}()

	cleanup := func() {
		cancel()
		hostCh.Close()
		deviceCh.Close()
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
	return hostProto, cleanup
}

func TestHostDriverFullCatalog(t *testing.T) {
	var serial [16]byte
	copy(serial[:], "PP-TEST-0001")
	state := device.New(6.12, serial)
	p, cleanup := newSession(t, state)
	defer cleanup()

	if err := hostdriver.EraseAll(p); err != nil {
		t.Fatalf("EraseAll: %v", err)
	}

	su, err := hostdriver.GetSpaceUsage(p)
	if err != nil {
		t.Fatalf("GetSpaceUsage: %v", err)
	}
	if su.UsedPercentage != command.SpaceUsagePercent {
		t.Fatalf("GetSpaceUsage = %d, want %d", su.UsedPercentage, command.SpaceUsagePercent)
	}

	sn, err := hostdriver.GetSerialNumber(p)
	if err != nil {
		t.Fatalf("GetSerialNumber: %v", err)
	}
	if sn.SerialNumber != serial {
		t.Fatalf("GetSerialNumber = %v, want %v", sn.SerialNumber, serial)
	}

	version, err := hostdriver.GetFirmwareVersion(p)
	if err != nil {
		t.Fatalf("GetFirmwareVersion: %v", err)
	}
	if version != 6.12 {
		t.Fatalf("GetFirmwareVersion = %v, want 6.12", version)
	}

	if err := hostdriver.SetUnits(p, device.UnitsMetric); err != nil {
		t.Fatalf("SetUnits: %v", err)
	}
	if err := hostdriver.SetOdometer(p, 1234); err != nil {
		t.Fatalf("SetOdometer: %v", err)
	}
	odo, err := hostdriver.GetOdometer(p)
	if err != nil {
		t.Fatalf("GetOdometer: %v", err)
	}
	if odo.UnitsType != device.UnitsMetric || odo.OdometerTenthsKm != 1234 {
		t.Fatalf("GetOdometer = %+v, want UnitsType=%d OdometerTenthsKm=1234", odo, device.UnitsMetric)
	}

	if err := hostdriver.SetSampleRate(p, 1); err != nil {
		t.Fatalf("SetSampleRate: %v", err)
	}
	if err := hostdriver.SetTrainerWeights(p, 1, 2, 3, 4); err != nil {
		t.Fatalf("SetTrainerWeights: %v", err)
	}
	if err := hostdriver.SetIntervals(p, 1, []command.IntervalRecord{{A: 1, B: 2, C: 3}}); err != nil {
		t.Fatalf("SetIntervals: %v", err)
	}

	if err := hostdriver.SetProfileNumber(p, 2); err != nil {
		t.Fatalf("SetProfileNumber: %v", err)
	}
	current, err := hostdriver.GetProfileNumber(p)
	if err != nil {
		t.Fatalf("GetProfileNumber: %v", err)
	}
	if current != 2 {
		t.Fatalf("GetProfileNumber = %d, want 2", current)
	}

	patch := newton.DefaultProfile()
	patch.RiderMassLb = 190
	if err := hostdriver.SetProfileData(p, patch); err != nil {
		t.Fatalf("SetProfileData: %v", err)
	}
	if err := hostdriver.SetProfileData2(p, 5, 99); err != nil {
		t.Fatalf("SetProfileData2: %v", err)
	}
	profiles, err := hostdriver.GetProfileData(p)
	if err != nil {
		t.Fatalf("GetProfileData: %v", err)
	}
	got := profiles.Profiles[2]
	if got.RiderMassLb != 190 {
		t.Fatalf("profile 2 RiderMassLb = %d, want 190", got.RiderMassLb)
	}
	if got.PowerSmoothingSeconds != 5 || got.UnknownC != 99 {
		t.Fatalf("profile 2 SetProfileData2 fields = %d/%d, want 5/99", got.PowerSmoothingSeconds, got.UnknownC)
	}

	screens := newton.Screens{Slots: [9]uint16{9, 8, 7, 6, 5, 4, 3, 2, 1}}
	if err := hostdriver.SetScreens(p, screens); err != nil {
		t.Fatalf("SetScreens: %v", err)
	}
	allScreens, err := hostdriver.GetAllScreens(p)
	if err != nil {
		t.Fatalf("GetAllScreens: %v", err)
	}
	if allScreens[2] != screens {
		t.Fatalf("profile 2 screens = %+v, want %+v", allScreens[2], screens)
	}

	state.With(func(s *device.State) {
		s.Rides = append(s.Rides, device.SeedDemoRide(5))
	})
	headers, err := hostdriver.GetFileList(p)
	if err != nil {
		t.Fatalf("GetFileList: %v", err)
	}
	if len(headers) != 1 {
		t.Fatalf("GetFileList returned %d rides, want 1", len(headers))
	}
	ride, err := hostdriver.GetFile(p, 0)
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if len(ride.Records) != 5 {
		t.Fatalf("GetFile returned %d records, want 5", len(ride.Records))
	}

	unknown, err := hostdriver.DoTypedCommand(p, command.Unknown, nil, command.DecodeUnknownResponse)
	if err != nil {
		t.Fatalf("UnknownCommand: %v", err)
	}
	if unknown != command.DefaultUnknownResponse() {
		t.Fatalf("UnknownCommand = %+v, want %+v", unknown, command.DefaultUnknownResponse())
	}
	if _, err := hostdriver.DoCommand(p, command.UploadFirmware, nil); err != nil {
		t.Fatalf("UploadFirmware: %v", err)
	}

	now := newton.Time{Year: 2026, Month: 7, Day: 31, Hours: 10, Mins: 0, Secs: 0, MonthLength: 31}
	if err := hostdriver.SetTime(p, now); err != nil {
		t.Fatalf("SetTime: %v", err)
	}
}
