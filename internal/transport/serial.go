package transport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// SerialChannel is a ByteChannel backed by a real serial port at the
// wire parameters the device expects: 115200 8N1.
type SerialChannel struct {
	port serial.Port
}

// DefaultBaudRate is the PowerPod's fixed link speed.
const DefaultBaudRate = 115200

// OpenSerial opens path at baud (use DefaultBaudRate for the device)
// with 8N1 framing and resets any stale input sitting in the driver
// buffer from a previous session.
func OpenSerial(path string, baud int) (*SerialChannel, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("transport: open %s: %w", path, err)
	}
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("transport: reset input buffer on %s: %w", path, err)
	}
	return &SerialChannel{port: port}, nil
}

func (c *SerialChannel) Read(p []byte) (int, error) {
	return c.port.Read(p)
}

func (c *SerialChannel) Write(p []byte) (int, error) {
	return c.port.Write(p)
}

func (c *SerialChannel) SetReadTimeout(d time.Duration) error {
	if d <= 0 {
		return c.port.SetReadTimeout(serial.NoTimeout)
	}
	return c.port.SetReadTimeout(d)
}

func (c *SerialChannel) Close() error {
	return c.port.Close()
}
