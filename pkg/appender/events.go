package appender

import "github.com/dastra/kafkalog/internal/domain"

// FailureKind is the coarse category of an asynchronous transport
// failure reported through OnTransportError.
type FailureKind = domain.FailureKind

// Failure kinds, in classification priority order.
const (
	ProducerError          = domain.ProducerError
	Timeout                = domain.Timeout
	BrokerTransportFailure = domain.BrokerTransportFailure
)

// EventHandler receives appender events. All methods are called
// synchronously from the goroutine that triggered the event: lifecycle
// and append events from the appender's caller, transport errors from
// the transport's notification goroutine. Handlers must not block.
type EventHandler interface {
	// OnStateChange is called after every appender state transition.
	OnStateChange(event StateChangeEvent)

	// OnAppend is called after a record has been handed to the transport.
	OnAppend(event AppendEvent)

	// OnTransportError is called for asynchronous broker failures. These
	// are reported out-of-band: no Append call is waiting for them.
	OnTransportError(event TransportErrorEvent)
}

// StateChangeEvent describes an appender state transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// AppendEvent describes one successfully transmitted record.
type AppendEvent struct {
	Topic     string
	Partition int32
	WireBytes int
}

// TransportErrorEvent describes a classified asynchronous failure.
type TransportErrorEvent struct {
	Kind   FailureKind
	Code   int32
	Reason string
}
