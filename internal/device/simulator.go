package device

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/bucko909/powerpod/internal/command"
	"github.com/bucko909/powerpod/internal/link"
	"github.com/bucko909/powerpod/internal/newton"
)

// Simulator answers a host's requests over a link.Protocol running in
// the device role, dispatching each inbound message to Dispatch.
type Simulator struct {
	protocol *link.Protocol
	state    *State
	logger   *log.Logger
}

// NewSimulator builds a Simulator over an already-constructed device
// role protocol instance.
func NewSimulator(protocol *link.Protocol, state *State, logger *log.Logger) *Simulator {
	if logger == nil {
		logger = log.Default()
	}
	return &Simulator{protocol: protocol, state: state, logger: logger}
}

// State returns the simulator's device state, for the live monitor or
// a ride-persistence hook to read.
func (sim *Simulator) State() *State {
	return sim.state
}

// Run answers requests until ctx is canceled or the link fails.
func (sim *Simulator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := sim.protocol.ReadMessage()
		if err != nil {
			return fmt.Errorf("device: read message: %w", err)
		}
		if len(msg) == 0 {
			sim.logger.Printf("[device] empty message, ignoring")
			continue
		}

		id := command.ID(msg[0])
		payload := msg[1:]
		resp, err := Dispatch(sim.state, id, payload)
		if err != nil {
			sim.logger.Printf("[device] %s: %v", id, err)
			return fmt.Errorf("device: dispatch %s: %w", id, err)
		}
		// Commands with no response get no second message: the host
		// already received its CommandAck as part of delivering the
		// request (link.Protocol.ReadMessage's completion ack).
		if command.HasResponse(id) {
			if err := sim.protocol.WriteMessage(resp); err != nil {
				return fmt.Errorf("device: write response to %s: %w", id, err)
			}
		}
	}
}

// SeedDemoRide generates a synthetic ride of n one-second records with
// a plausible speed/power ramp, for use by the simulate CLI so the
// device is immediately useful without real sensor input. Grounded in
// the original simulator's fixed 1000-record demonstration ride,
// generalized to an arbitrary length and parameterized ramp.
func SeedDemoRide(n int) newton.Ride {
	records := make([]newton.Record, n)
	for i := 0; i < n; i++ {
		t := float64(i)
		speed := 15 + 10*math.Sin(t/120)
		if speed < 0 {
			speed = 0
		}
		power := 150 + 80*math.Sin(t/90+1)
		if power < 0 {
			power = 0
		}
		records[i] = newton.RideData{
			ElevationFeet:              int32(500 + 50*math.Sin(t/300)),
			Cadence:                    uint8(80 + 10*math.Sin(t/60)),
			HeartRate:                  uint8(130 + 15*math.Sin(t/100)),
			TemperatureFarenheit:       68,
			Tilt:                       2 * math.Sin(t/300),
			SpeedMph:                   speed,
			WindTubePressureDifference: 700,
			PowerWatts:                 uint32(power),
			DfpmPowerWatts:             uint32(power),
			Acceleration:               0,
			StoppedFlag:                0,
		}
	}
	return newton.MakeRide(records)
}
