package hostdriver_test

import (
	"testing"

	"github.com/bucko909/powerpod/internal/command"
	"github.com/bucko909/powerpod/internal/hostdriver"
	"github.com/bucko909/powerpod/internal/link"
	"github.com/bucko909/powerpod/internal/transport"
)

// fakeResponse is an Encodable whose Encode() never matches what it
// was decoded from, for exercising DoTypedCommand's round-trip check.
type fakeResponse struct{ tag byte }

func (f fakeResponse) Encode() []byte { return []byte{0xAA, 0xAA} }

func decodeFakeResponseMismatched(b []byte) (fakeResponse, error) {
	return fakeResponse{tag: b[0]}, nil
}

// serveOnce answers exactly one request on ch with the given raw
// response bytes, performing the device side of the handshake, then
// returns.
func serveOnce(t *testing.T, ch transport.ByteChannel, response []byte) {
	t.Helper()
	p := link.New(ch, link.RoleDevice, nil)
	if _, err := p.ReadMessage(); err != nil {
		t.Errorf("serveOnce: ReadMessage: %v", err)
		return
	}
	if err := p.WriteMessage(response); err != nil {
		t.Errorf("serveOnce: WriteMessage: %v", err)
	}
}

func TestDoTypedCommandDetectsRoundTripMismatch(t *testing.T) {
	hostCh, deviceCh := transport.NewLoopbackPair()
	defer hostCh.Close()
	defer deviceCh.Close()

	go serveOnce(t, deviceCh, []byte{0x01, 0x02})

	hostProto := link.New(hostCh, link.RoleHost, nil)
	_, err := hostdriver.DoTypedCommand(hostProto, command.GetSpaceUsage, nil, decodeFakeResponseMismatched)
	if err == nil {
		t.Fatalf("expected a round-trip mismatch error")
	}
}

func TestDoCommandNoResponseForAckOnlyCommand(t *testing.T) {
	hostCh, deviceCh := transport.NewLoopbackPair()
	defer hostCh.Close()
	defer deviceCh.Close()

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		// Mirrors device.Simulator.Run for a command with no response:
		// ReadMessage alone delivers the request's completion ack: no
		// second WriteMessage call follows.
		p := link.New(deviceCh, link.RoleDevice, nil)
		if _, err := p.ReadMessage(); err != nil {
			t.Errorf("device ReadMessage: %v", err)
		}
	}()

	hostProto := link.New(hostCh, link.RoleHost, nil)
	raw, err := hostdriver.DoCommand(hostProto, command.SetTime, []byte{0x01})
	if err != nil {
		t.Fatalf("DoCommand: %v", err)
	}
	if raw != nil {
		t.Fatalf("DoCommand(SetTime) = %v, want nil", raw)
	}
	<-readDone
}
