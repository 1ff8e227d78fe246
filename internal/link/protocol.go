package link

import (
	"fmt"
	"log"
	"time"

	"github.com/bucko909/powerpod/internal/transport"
)

// Role determines which ack a party sends and expects on message
// completion: the device writes CommandAck and expects Ack; the host
// writes Ack and expects CommandAck.
type Role int

const (
	RoleHost Role = iota
	RoleDevice
)

const (
	// splitSize is the segmentation boundary: non-terminal message
	// fragments carry exactly this many bytes, the terminal fragment
	// carries fewer (possibly zero).
	splitSize = 63

	// frameTimeout bounds how long a partially-received frame may
	// take once its first byte has arrived.
	frameTimeout = 100 * time.Millisecond
)

// Protocol carries application messages over a ByteChannel using the
// ready/ack/interrupt handshake, from the perspective of role.
type Protocol struct {
	ch     transport.ByteChannel
	role   Role
	logger *log.Logger
}

func New(ch transport.ByteChannel, role Role, logger *log.Logger) *Protocol {
	if logger == nil {
		logger = log.Default()
	}
	return &Protocol{ch: ch, role: role, logger: logger}
}

// completionAck is the ack this role sends from ReadMessage after
// receiving the terminal fragment of a message; it is the ack the
// peer's WriteMessage expects (the peer's expectedCompletionAck).
func (p *Protocol) completionAck() Tag {
	if p.role == RoleDevice {
		return TagCommandAck
	}
	return TagAck
}

func (p *Protocol) expectedCompletionAck() Tag {
	if p.role == RoleDevice {
		return TagAck
	}
	return TagCommandAck
}

// readPacket reads exactly one packet, dropping unrecognized leading
// bytes and aborting (writing Interrupt and retrying) on any
// malformed or partial frame.
func (p *Protocol) readPacket() (Packet, error) {
	for {
		if err := p.ch.SetReadTimeout(0); err != nil {
			return Packet{}, fmt.Errorf("link: set blocking read timeout: %w", err)
		}
		first, err := p.readByte()
		if err != nil {
			return Packet{}, fmt.Errorf("link: read first byte: %w", err)
		}

		if pkt, ok := ParseControl(first); ok {
			return pkt, nil
		}
		if first != messagePrefix[0] {
			// Unrecognized tag byte; the device is noisy. Drop and resync.
			continue
		}

		pkt, ok := p.readFrame(first)
		if !ok {
			p.interrupt()
			continue
		}
		return pkt, nil
	}
}

// readFrame reads the remainder of a Message frame whose first byte
// (already known to be messagePrefix[0]) is first. ok is false if the
// frame timed out or failed validation; the caller must interrupt and
// resync.
func (p *Protocol) readFrame(first byte) (Packet, bool) {
	if err := p.ch.SetReadTimeout(frameTimeout); err != nil {
		p.logger.Printf("link: set frame read timeout: %v", err)
		return Packet{}, false
	}
	buf := []byte{first}
	deadline := time.Now().Add(frameTimeout)
	for {
		need, ok := ReadLength(buf)
		if !ok {
			return Packet{}, false
		}
		if need == 0 {
			break
		}
		if time.Now().After(deadline) {
			return Packet{}, false
		}
		chunk := make([]byte, need)
		n, err := p.ch.Read(chunk)
		if err != nil {
			p.logger.Printf("link: frame read error: %v", err)
			return Packet{}, false
		}
		if n == 0 {
			return Packet{}, false
		}
		buf = append(buf, chunk[:n]...)
	}
	pkt, err := ParseMessage(buf)
	if err != nil {
		p.logger.Printf("link: %v", err)
		return Packet{}, false
	}
	return pkt, true
}

// readByte blocks (per the channel's current timeout) until exactly
// one byte is available.
func (p *Protocol) readByte() (byte, error) {
	buf := make([]byte, 1)
	for {
		n, err := p.ch.Read(buf)
		if err != nil {
			return 0, err
		}
		if n == 1 {
			return buf[0], nil
		}
	}
}

func (p *Protocol) writePacket(pkt Packet) error {
	wire, err := pkt.WireValue()
	if err != nil {
		return fmt.Errorf("link: encode packet: %w", err)
	}
	if err := p.ch.SetReadTimeout(frameTimeout); err != nil {
		return fmt.Errorf("link: set write-path timeout: %w", err)
	}
	n, err := p.ch.Write(wire)
	if err != nil {
		return fmt.Errorf("link: write packet: %w", err)
	}
	if n != len(wire) {
		p.logger.Printf("link: short write: wrote %d of %d bytes", n, len(wire))
	}
	return nil
}

func (p *Protocol) interrupt() {
	if err := p.writePacket(Control(TagInterrupt)); err != nil {
		p.logger.Printf("link: failed to write interrupt: %v", err)
	}
}

// ReadMessage reassembles a complete application message from one or
// more Message fragments, performing the ready/ack handshake for
// each fragment per SPEC_FULL §4.2.3.
func (p *Protocol) ReadMessage() ([]byte, error) {
	var out []byte
	for {
		pkt, err := p.readPacket()
		if err != nil {
			return nil, err
		}
		if pkt.Kind != KindControl || pkt.Tag != TagReady {
			p.interrupt()
			continue
		}
		if err := p.writePacket(Control(TagAck)); err != nil {
			return nil, err
		}

		msg, err := p.readPacket()
		if err != nil {
			return nil, err
		}
		if msg.Kind != KindMessage {
			p.interrupt()
			continue
		}
		out = append(out, msg.Data...)

		if len(msg.Data) < splitSize {
			if err := p.writePacket(Control(p.completionAck())); err != nil {
				return nil, err
			}
			return out, nil
		}
		if err := p.writePacket(Control(TagAck)); err != nil {
			return nil, err
		}
	}
}

// WriteMessage sends payload as one or more Message fragments
// segmented at splitSize bytes, performing the ready/ack handshake
// for each fragment. A nil payload sends a single CommandAck and no
// fragments (SPEC_FULL §4.2.4, "no response" commands).
func (p *Protocol) WriteMessage(payload []byte) error {
	if payload == nil {
		return p.writePacket(Control(TagCommandAck))
	}

	for i := 0; ; i += splitSize {
		end := i + splitSize
		if end > len(payload) {
			end = len(payload)
		}
		segment := payload[i:end]
		// A full-width segment is never terminal on its own: if the
		// payload length is an exact multiple of splitSize, a
		// trailing empty fragment follows so the reader (which keys
		// off len(msg.Data) < splitSize) sees the same boundary.
		terminal := len(segment) < splitSize

		if err := p.writePacket(Control(TagReady)); err != nil {
			return err
		}
		ack, err := p.readPacket()
		if err != nil {
			return err
		}
		if ack.Kind != KindControl || ack.Tag != TagAck {
			p.interrupt()
			return fmt.Errorf("link: expected Ack before message fragment, got %+v", ack)
		}

		if err := p.writePacket(Message(segment)); err != nil {
			return err
		}
		done, err := p.readPacket()
		if err != nil {
			return err
		}
		wantTag := TagAck
		if terminal {
			wantTag = p.expectedCompletionAck()
		}
		if done.Kind != KindControl || done.Tag != wantTag {
			p.interrupt()
			return fmt.Errorf("link: expected %#x after fragment, got %+v", wantTag, done)
		}

		if terminal {
			return nil
		}
	}
}
