package transport

import (
	"context"

	"github.com/dastra/kafkalog/internal/ports"
	"github.com/dastra/kafkalog/internal/protocol"
)

// DryRun is the test transport: Open creates no network resource and
// Produce performs no I/O. Every frame that would have been written is
// recorded for observation, so the full encode path can be exercised
// without a broker.
type DryRun struct {
	conns []*DryRunConn
}

// NewDryRun creates a dry-run transport.
func NewDryRun() *DryRun {
	return &DryRun{}
}

// Open returns a recording connection bound to the target.
func (d *DryRun) Open(ctx context.Context, target ports.Target) (ports.Conn, error) {
	c := &DryRunConn{target: target}
	d.conns = append(d.conns, c)
	return c, nil
}

// Frames returns all wire frames recorded across every connection this
// transport has handed out, in produce order.
func (d *DryRun) Frames() [][]byte {
	var frames [][]byte
	for _, c := range d.conns {
		frames = append(frames, c.frames...)
	}
	return frames
}

// DryRunConn records produced frames instead of transmitting them.
type DryRunConn struct {
	target ports.Target
	frames [][]byte
	closed bool
}

// Produce records the frame's wire bytes.
func (c *DryRunConn) Produce(ctx context.Context, frame protocol.Frame) error {
	c.frames = append(c.frames, frame.Wire)
	return nil
}

// Close marks the connection closed.
func (c *DryRunConn) Close() error {
	c.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (c *DryRunConn) Closed() bool {
	return c.closed
}

// Frames returns the wire frames recorded by this connection.
func (c *DryRunConn) Frames() [][]byte {
	return c.frames
}
