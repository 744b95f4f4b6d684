// Package log defines the structured logging abstraction used across
// kafkalog.
//
// The library defaults to the no-op logger and never writes output on
// its own. Callers that want logs inject an implementation, typically
// the zerolog adapter:
//
//	logger := log.NewZerologAdapter()
//	app, err := appender.New(cfg, appender.WithLogger(logger))
package log
