package domain

import "errors"

// Domain errors represent error conditions in the kafkalog domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrFrameTooLarge is returned when a payload, topic or envelope does
	// not fit the length prefix that precedes it on the wire. The record
	// is dropped; encoding never produces a truncated frame.
	ErrFrameTooLarge = errors.New("kafkalog: frame too large")

	// ErrNotConnected is returned when Produce or Append is called before
	// a successful connect, or after the connection has been closed.
	ErrNotConnected = errors.New("kafkalog: not connected")

	// ErrConnect is returned when the transport resource cannot be
	// established. No partial state is left open.
	ErrConnect = errors.New("kafkalog: connect failed")

	// ErrWrite is returned when a frame cannot be transmitted in full.
	ErrWrite = errors.New("kafkalog: write failed")

	// ErrClosed is returned when Connect or Activate is called on an
	// instance that has already released its transport resource.
	ErrClosed = errors.New("kafkalog: closed")

	// ErrAppend wraps encode or transmit failures raised by Append.
	ErrAppend = errors.New("kafkalog: append failed")

	// ErrActivation is returned when Activate cannot establish the
	// connection; the appender remains inactive.
	ErrActivation = errors.New("kafkalog: activation failed")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("kafkalog: invalid configuration")
)
