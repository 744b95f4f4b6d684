package appender

import (
	"github.com/dastra/kafkalog/internal/ports"
	"github.com/dastra/kafkalog/pkg/log"
)

// Transport opens connections to a delivery target. The built-in
// strategies cover TCP sockets, the kafka-go client and dry-run; custom
// implementations can be injected with WithTransport.
type Transport = ports.Transport

// Conn is a live transport resource handed out by a Transport.
type Conn = ports.Conn

// Target identifies where frames are delivered.
type Target = ports.Target

// Option configures optional behavior of an Appender.
type Option func(*options)

type options struct {
	logger    log.Logger
	handler   EventHandler
	transport Transport
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets a custom logger. If not provided, log output is
// discarded.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for appender events. If not provided,
// no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.handler = handler
	}
}

// WithTransport overrides the transport strategy selected from the
// configuration. Mainly useful for tests and custom delivery paths.
func WithTransport(transport Transport) Option {
	return func(o *options) {
		o.transport = transport
	}
}
