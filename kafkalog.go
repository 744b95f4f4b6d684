// Package kafkalog is a log-record sink for Kafka brokers: it encodes
// already-formatted log payloads into length-prefixed, CRC-32
// checksummed wire frames and ships them fire-and-forget over a managed
// connection.
//
// Example usage:
//
//	cfg := kafkalog.DefaultConfig()
//	cfg.Topic = "logs"
//	app, err := kafkalog.New(cfg, kafkalog.WithLogger(log.NewZerologAdapter()))
//	if err != nil {
//	    return err
//	}
//	defer app.Close()
//	err = app.Append(ctx, []byte("formatted log line"))
//
// The full API lives in pkg/appender; this package re-exports the
// common entry points.
package kafkalog

import "github.com/dastra/kafkalog/pkg/appender"

// Appender is the log-record sink. See pkg/appender for details.
type Appender = appender.Appender

// Config holds the appender configuration.
type Config = appender.Config

// Option configures optional appender behavior.
type Option = appender.Option

// Snapshot is the persisted form of an appender.
type Snapshot = appender.Snapshot

// DefaultConfig returns a Config with the standard defaults.
func DefaultConfig() Config {
	return appender.DefaultConfig()
}

// New creates an appender in the Inactive state.
func New(cfg Config, opts ...Option) (*Appender, error) {
	return appender.New(cfg, opts...)
}

// WithLogger sets a custom logger.
var WithLogger = appender.WithLogger

// WithEventHandler sets a handler for appender events.
var WithEventHandler = appender.WithEventHandler

// WithTransport overrides the transport strategy.
var WithTransport = appender.WithTransport
