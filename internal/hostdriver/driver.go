// Package hostdriver implements the host side of a PowerPod session:
// encoding a command, sending it, and (for commands that elicit one)
// reading and validating its typed response.
package hostdriver

import (
	"bytes"
	"fmt"

	"github.com/bucko909/powerpod/internal/command"
	"github.com/bucko909/powerpod/internal/link"
)

// Encodable is anything that can re-encode itself to wire bytes; every
// command response type in package command satisfies it.
type Encodable interface {
	Encode() []byte
}

// DoCommand writes id's request (identifier byte plus payload) and,
// if id has a response, reads it back raw. It does not decode the
// response; use DoTypedCommand for that.
func DoCommand(p *link.Protocol, id command.ID, payload []byte) ([]byte, error) {
	msg := append([]byte{byte(id)}, payload...)
	if err := p.WriteMessage(msg); err != nil {
		return nil, fmt.Errorf("hostdriver: %s: write request: %w", id, err)
	}
	if !command.HasResponse(id) {
		return nil, nil
	}
	raw, err := p.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("hostdriver: %s: read response: %w", id, err)
	}
	return raw, nil
}

// DoTypedCommand sends id's request and decodes its response as T,
// then asserts that re-encoding T reproduces the exact bytes received
// (SPEC_FULL §4.8's round-trip invariant, a codec bug detector). A
// round-trip mismatch is returned as an error alongside the decoded
// value, since the decode itself succeeded.
func DoTypedCommand[T Encodable](p *link.Protocol, id command.ID, payload []byte, decode func([]byte) (T, error)) (T, error) {
	var zero T
	raw, err := DoCommand(p, id, payload)
	if err != nil {
		return zero, err
	}
	if raw == nil {
		return zero, fmt.Errorf("hostdriver: %s: expected a response, got none", id)
	}
	resp, err := decode(raw)
	if err != nil {
		return zero, fmt.Errorf("hostdriver: %s: decode response: %w", id, err)
	}
	if got := resp.Encode(); !bytes.Equal(got, raw) {
		return resp, fmt.Errorf("hostdriver: %s: round-trip mismatch: re-encoded %x, wire was %x", id, got, raw)
	}
	return resp, nil
}
