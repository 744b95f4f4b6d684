// Package conn owns the lifecycle of a single transport resource.
//
// A Manager holds at most one live connection at a time and moves through
// Unconnected -> Connected -> Closed. Connect is idempotent while
// Connected, Close releases the resource exactly once, and Produce
// refuses to run outside Connected rather than reconnecting implicitly:
// the appender decides when connections are (re)established.
//
// A Manager is owned by a single goroutine; concurrent use requires
// external synchronization.
package conn

import (
	"context"
	"fmt"

	"github.com/dastra/kafkalog/internal/domain"
	"github.com/dastra/kafkalog/internal/ports"
	"github.com/dastra/kafkalog/internal/protocol"
)

// State is the connection lifecycle state.
type State int

const (
	Unconnected State = iota
	Connected
	Closed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case Unconnected:
		return "Unconnected"
	case Connected:
		return "Connected"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Manager manages one transport connection.
type Manager struct {
	transport ports.Transport
	logger    ports.Logger

	state  State
	conn   ports.Conn
	target ports.Target
}

// NewManager creates a manager in the Unconnected state. No transport
// resource is opened until Connect.
func NewManager(transport ports.Transport, logger ports.Logger) *Manager {
	return &Manager{
		transport: transport,
		logger:    logger,
		state:     Unconnected,
	}
}

// State returns the current connection state.
func (m *Manager) State() State {
	return m.state
}

// Target returns the target of the current or last connection.
func (m *Manager) Target() ports.Target {
	return m.target
}

// Connect opens the transport resource for target. Calling Connect while
// already Connected is a no-op. After Close it fails with ErrClosed: a
// closed manager never reopens, the caller builds a fresh one.
func (m *Manager) Connect(ctx context.Context, target ports.Target) error {
	switch m.state {
	case Connected:
		return nil
	case Closed:
		return domain.ErrClosed
	}

	c, err := m.transport.Open(ctx, target)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrConnect, target.Addr(), err)
	}

	m.conn = c
	m.target = target
	m.state = Connected

	m.logger.Debug("connected",
		ports.String("addr", target.Addr()),
		ports.String("topic", target.Topic),
		ports.Int32("partition", target.Partition),
	)
	return nil
}

// Produce delivers one frame over the live connection. It requires
// Connected: producing before Connect, or after Close or a connection
// failure, fails with ErrNotConnected instead of reconnecting silently.
//
// A failed write releases the connection and returns the manager to
// Unconnected; it takes an explicit Connect to transmit again.
func (m *Manager) Produce(ctx context.Context, frame protocol.Frame) error {
	if m.state != Connected {
		return domain.ErrNotConnected
	}
	if err := m.conn.Produce(ctx, frame); err != nil {
		if cerr := m.conn.Close(); cerr != nil {
			m.logger.Warn("releasing failed connection", ports.Err(cerr))
		}
		m.conn = nil
		m.state = Unconnected
		return fmt.Errorf("%w: %v", domain.ErrWrite, err)
	}
	return nil
}

// Close releases the transport resource. Idempotent: the resource is
// released exactly once regardless of how many times Close is called,
// and calling it on a never-connected manager is a no-op.
func (m *Manager) Close() error {
	if m.state == Closed {
		return nil
	}

	var err error
	if m.conn != nil {
		err = m.conn.Close()
		m.conn = nil
	}
	m.state = Closed

	if err != nil {
		m.logger.Warn("connection close failed", ports.Err(err))
		return err
	}
	return nil
}
