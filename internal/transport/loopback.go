package transport

import (
	"net"
	"time"
)

// NewLoopbackPair returns two connected ByteChannels: bytes written
// to one are read from the other, and vice versa. It is used to run
// a host driver and a device simulator against each other without a
// real serial port, and by tests exercising the link protocol.
func NewLoopbackPair() (a, b ByteChannel) {
	ca, cb := net.Pipe()
	return &loopbackChannel{conn: ca}, &loopbackChannel{conn: cb}
}

// loopbackChannel adapts a net.Conn (here, one end of a net.Pipe) to
// ByteChannel, translating the read-timeout contract into a deadline.
type loopbackChannel struct {
	conn net.Conn
}

func (c *loopbackChannel) Read(p []byte) (int, error) {
	n, err := c.conn.Read(p)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return n, nil
		}
	}
	return n, err
}

func (c *loopbackChannel) Write(p []byte) (int, error) {
	return c.conn.Write(p)
}

func (c *loopbackChannel) SetReadTimeout(d time.Duration) error {
	if d <= 0 {
		return c.conn.SetReadDeadline(time.Time{})
	}
	return c.conn.SetReadDeadline(time.Now().Add(d))
}

func (c *loopbackChannel) Close() error {
	return c.conn.Close()
}
