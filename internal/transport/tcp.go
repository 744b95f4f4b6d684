package transport

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/dastra/kafkalog/internal/ports"
	"github.com/dastra/kafkalog/internal/protocol"
)

// Default socket timeouts. Produce either completes, times out, or fails
// fast; nothing blocks indefinitely.
const (
	DefaultDialTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
)

// TCP is the socket transport strategy: one TCP connection per target,
// each produce writes one complete wire frame.
type TCP struct {
	logger       ports.Logger
	dialTimeout  time.Duration
	writeTimeout time.Duration
}

// NewTCP creates a TCP transport with default timeouts.
func NewTCP(logger ports.Logger) *TCP {
	return &TCP{
		logger:       logger,
		dialTimeout:  DefaultDialTimeout,
		writeTimeout: DefaultWriteTimeout,
	}
}

// Open dials the target endpoint.
func (t *TCP) Open(ctx context.Context, target ports.Target) (ports.Conn, error) {
	dialer := net.Dialer{Timeout: t.dialTimeout}
	c, err := dialer.DialContext(ctx, "tcp", target.Addr())
	if err != nil {
		return nil, err
	}
	return &tcpConn{
		conn:         c,
		writeTimeout: t.writeTimeout,
	}, nil
}

type tcpConn struct {
	conn         net.Conn
	writeTimeout time.Duration
}

// Produce writes the encoded wire frame in full. net.Conn.Write only
// returns nil error on a full write, so a short write always surfaces.
func (c *tcpConn) Produce(ctx context.Context, frame protocol.Frame) error {
	deadline := time.Now().Add(c.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}

	if _, err := c.conn.Write(frame.Wire); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (c *tcpConn) Close() error {
	return c.conn.Close()
}
