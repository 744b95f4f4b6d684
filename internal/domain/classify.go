package domain

import "strings"

// FailureKind is the coarse category of an asynchronous broker transport
// failure. Downstream policies (alerting, retry decisions) key off this
// rather than broker-specific error wording.
type FailureKind int

const (
	// ProducerError is the catch-all for unclassified broker failures.
	ProducerError FailureKind = iota

	// Timeout covers both message and connection timeouts.
	Timeout

	// BrokerTransportFailure indicates the broker connection itself broke.
	BrokerTransportFailure
)

// String returns a human-readable representation of the kind.
func (k FailureKind) String() string {
	switch k {
	case Timeout:
		return "Timeout"
	case BrokerTransportFailure:
		return "BrokerTransportFailure"
	case ProducerError:
		return "ProducerError"
	default:
		return "Unknown"
	}
}

// Classify maps a broker error code and its decoded reason text to a
// FailureKind. Matching is by substring so minor wording changes across
// broker versions do not break classification. Priority: timeouts first,
// then transport failures, then the catch-all.
//
// Classify reads only its inputs and never blocks; it is safe to call
// from transport notification goroutines.
func Classify(code int32, reason string) FailureKind {
	switch {
	case strings.Contains(reason, "timed out"):
		return Timeout
	case strings.Contains(reason, "transport failure"):
		return BrokerTransportFailure
	default:
		return ProducerError
	}
}
