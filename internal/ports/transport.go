package ports

import (
	"context"
	"net"
	"strconv"

	"github.com/dastra/kafkalog/internal/protocol"
)

// Target identifies where frames are delivered. Immutable once a
// connection is open; changing it requires closing and reopening.
type Target struct {
	// Host and Port locate the broker for socket transports.
	Host string
	Port int

	// Topic and Partition select the destination within the broker.
	// Partition may be the "unassigned" sentinel, leaving the choice to
	// the broker.
	Topic     string
	Partition int32

	// Brokers is the bootstrap list for broker-client transports. Host
	// and Port are used when it is empty.
	Brokers []string

	// Version is the broker protocol version string.
	Version string
}

// Addr returns the host:port form of the primary endpoint.
func (t Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// Transport opens connections to a delivery target.
type Transport interface {
	// Open establishes the transport resource for the target. On error,
	// no partial state is left open.
	Open(ctx context.Context, target Target) (Conn, error)
}

// Conn is a live, exclusively-owned transport resource.
type Conn interface {
	// Produce delivers one frame in full, or fails.
	Produce(ctx context.Context, frame protocol.Frame) error

	// Close releases the resource. Implementations are called at most
	// once by the connection manager.
	Close() error
}

// ErrorFunc receives asynchronous transport failure notifications: a
// broker error code and the decoded reason text. It runs on the
// transport's own notification goroutine and must not block; it must not
// reach back into the connection manager.
type ErrorFunc func(code int32, reason string)
