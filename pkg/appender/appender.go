package appender

import (
	"context"
	"fmt"

	"github.com/dastra/kafkalog/internal/conn"
	"github.com/dastra/kafkalog/internal/domain"
	"github.com/dastra/kafkalog/internal/ports"
	"github.com/dastra/kafkalog/internal/protocol"
	"github.com/dastra/kafkalog/internal/transport"
	"github.com/dastra/kafkalog/pkg/log"
)

// Errors returned by the appender API, checkable with errors.Is.
var (
	ErrFrameTooLarge = domain.ErrFrameTooLarge
	ErrNotConnected  = domain.ErrNotConnected
	ErrConnect       = domain.ErrConnect
	ErrWrite         = domain.ErrWrite
	ErrClosed        = domain.ErrClosed
	ErrAppend        = domain.ErrAppend
	ErrActivation    = domain.ErrActivation
	ErrInvalidConfig = domain.ErrInvalidConfig
)

// State is the appender lifecycle state.
type State int

const (
	Inactive State = iota
	Active
	Closed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case Inactive:
		return "Inactive"
	case Active:
		return "Active"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Appender is a log-record sink: it encodes each appended record into a
// wire frame and transmits it over a managed connection.
//
// An Appender is owned by a single goroutine. Loggers invoke Append
// sequentially on the calling path; concurrent use requires external
// synchronization or one Appender per goroutine. The only exception is
// the transport's asynchronous error notification, which never touches
// appender state and is delivered through the event handler.
type Appender struct {
	cfg     Config
	logger  log.Logger
	handler EventHandler

	transport ports.Transport
	dryRun    *transport.DryRun
	mgr       *conn.Manager
	state     State
}

// New creates an appender in the Inactive state. No connection is opened
// until Activate (or the first Append). The transport strategy follows
// the configuration: dry-run when cfg.DryRun is set, the broker-client
// strategy when cfg.Brokers is non-empty, the raw socket otherwise.
func New(cfg Config, opts ...Option) (*Appender, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	a := &Appender{
		cfg:     cfg,
		logger:  o.logger,
		handler: o.handler,
		state:   Inactive,
	}

	switch {
	case o.transport != nil:
		a.transport = o.transport
	case cfg.DryRun:
		a.dryRun = transport.NewDryRun()
		a.transport = a.dryRun
	case len(cfg.Brokers) > 0:
		a.transport = transport.NewKafka(o.logger, a.reportTransportError)
	default:
		a.transport = transport.NewTCP(o.logger)
	}

	a.mgr = conn.NewManager(a.transport, o.logger)
	return a, nil
}

// State returns the current appender state.
func (a *Appender) State() State {
	return a.state
}

// Config returns the appender configuration.
func (a *Appender) Config() Config {
	return a.cfg
}

// Activate transitions Inactive -> Active, establishing the connection.
// On connect failure it fails with an ErrActivation error and the
// appender stays Inactive. Activate is idempotent while Active, and
// re-establishes the connection if a write failure dropped it.
// Activating a Closed appender fails with ErrClosed.
func (a *Appender) Activate(ctx context.Context) error {
	if a.state == Closed {
		return domain.ErrClosed
	}

	if err := a.mgr.Connect(ctx, a.cfg.target()); err != nil {
		a.logger.Error("activation failed",
			log.String("addr", a.cfg.target().Addr()),
			log.Err(err),
		)
		return fmt.Errorf("%w: %w", domain.ErrActivation, err)
	}

	if a.state == Inactive {
		a.setState(Active, "activated")
	}
	return nil
}

// Append encodes one already-formatted record payload and transmits it.
//
// An Inactive appender is activated once, lazily, on the first Append.
// Encoding failures (ErrFrameTooLarge) drop the record; transmission
// failures surface as ErrAppend without any automatic retry, and a later
// Append keeps failing until an explicit Activate or Reset cycle
// re-establishes the connection. After Close, Append fails with
// ErrNotConnected.
func (a *Appender) Append(ctx context.Context, payload []byte) error {
	switch a.state {
	case Closed:
		return domain.ErrNotConnected
	case Inactive:
		if err := a.Activate(ctx); err != nil {
			return err
		}
	}

	frame, err := protocol.NewFrame(payload, a.cfg.Topic, a.cfg.Partition)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrAppend, err)
	}

	if err := a.mgr.Produce(ctx, frame); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrAppend, err)
	}

	a.logger.Debug("record appended",
		log.String("topic", frame.Topic),
		log.Int32("partition", frame.Partition),
		log.Int("wire_bytes", len(frame.Wire)),
	)
	if a.handler != nil {
		a.handler.OnAppend(AppendEvent{
			Topic:     frame.Topic,
			Partition: frame.Partition,
			WireBytes: len(frame.Wire),
		})
	}
	return nil
}

// Reset closes the live connection and returns the appender to
// Inactive, ready for re-activation. Resetting a Closed appender fails
// with ErrClosed.
func (a *Appender) Reset() error {
	if a.state == Closed {
		return domain.ErrClosed
	}

	if err := a.mgr.Close(); err != nil {
		a.logger.Warn("reset: close failed", log.Err(err))
	}
	a.mgr = conn.NewManager(a.transport, a.logger)
	a.setState(Inactive, "reset")
	return nil
}

// Close releases the connection and transitions to Closed. Idempotent:
// the transport resource is released exactly once no matter how many
// times Close is called.
func (a *Appender) Close() error {
	if a.state == Closed {
		return nil
	}

	err := a.mgr.Close()
	a.setState(Closed, "closed")
	return err
}

// DryRunFrames returns the wire frames recorded so far when the
// appender runs in dry-run mode, and nil otherwise.
func (a *Appender) DryRunFrames() [][]byte {
	if a.dryRun == nil {
		return nil
	}
	return a.dryRun.Frames()
}

// setState transitions the state and notifies observers.
func (a *Appender) setState(next State, reason string) {
	prev := a.state
	a.state = next

	a.logger.Info("state transition",
		log.String("from", prev.String()),
		log.String("to", next.String()),
		log.String("reason", reason),
	)
	if a.handler != nil {
		a.handler.OnStateChange(StateChangeEvent{Previous: prev, Current: next, Reason: reason})
	}
}

// reportTransportError classifies an asynchronous broker failure and
// reports it out-of-band. It runs on the transport's notification
// goroutine and deliberately mutates no appender state.
func (a *Appender) reportTransportError(code int32, reason string) {
	kind := domain.Classify(code, reason)
	a.logger.Error("transport error",
		log.String("kind", kind.String()),
		log.Int32("code", code),
		log.String("reason", reason),
	)
	if a.handler != nil {
		a.handler.OnTransportError(TransportErrorEvent{Kind: kind, Code: code, Reason: reason})
	}
}
