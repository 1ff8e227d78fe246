// Package device implements the simulated PowerPod: its mutable
// state, the per-command handlers that update it, and a simulator
// loop that answers a host's requests over the link protocol.
package device

import (
	"sync"

	"github.com/bucko909/powerpod/internal/newton"
)

// UnitsEnglish and UnitsMetric are the two values SetUnits/GetOdometer
// exchange.
const (
	UnitsEnglish int16 = 0
	UnitsMetric  int16 = 1
)

// State is the simulator's mutable device state: everything a
// command handler can read or change. All access must hold its mutex
// (Dispatch takes it; other callers use the With helper) so the live
// monitor can safely snapshot it from another goroutine.
type State struct {
	mu sync.Mutex

	FirmwareVersion  float64
	SerialNumber     [16]byte
	Rides            []newton.Ride
	Profiles         [4]newton.Profile
	Screens          [4]newton.Screens
	CurrentProfile   int16
	OdometerTenthsKm int32
	UnitsType        int16
}

// New returns a freshly seeded device state: four default profiles,
// zeroed screens, an empty ride list, and the given identity.
func New(firmwareVersion float64, serialNumber [16]byte) *State {
	s := &State{
		FirmwareVersion: firmwareVersion,
		SerialNumber:    serialNumber,
		UnitsType:       UnitsEnglish,
	}
	for i := range s.Profiles {
		s.Profiles[i] = newton.DefaultProfile()
	}
	return s
}

// With runs fn with the state locked, for use by callers (such as the
// live monitor) that need a consistent snapshot.
func (s *State) With(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

// Snapshot is a read-only, JSON-friendly view of device state for the
// live monitor.
type Snapshot struct {
	FirmwareVersion  float64 `json:"firmwareVersion"`
	CurrentProfile   int16   `json:"currentProfile"`
	OdometerTenthsKm int32   `json:"odometerTenthsKm"`
	UnitsType        int16   `json:"unitsType"`
	RideCount        int     `json:"rideCount"`
	LatestRideRecords int    `json:"latestRideRecords"`
}

func (s *State) Snapshot() Snapshot {
	var snap Snapshot
	s.With(func(s *State) {
		snap = Snapshot{
			FirmwareVersion:  s.FirmwareVersion,
			CurrentProfile:   s.CurrentProfile,
			OdometerTenthsKm: s.OdometerTenthsKm,
			UnitsType:        s.UnitsType,
			RideCount:        len(s.Rides),
		}
		if n := len(s.Rides); n > 0 {
			snap.LatestRideRecords = len(s.Rides[n-1].Records)
		}
	})
	return snap
}
