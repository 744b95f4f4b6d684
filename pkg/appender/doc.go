// Package appender provides the public log-record sink.
//
// An Appender accepts already-formatted record payloads, encodes each
// into a length-prefixed, checksummed wire frame and transmits it over a
// managed connection. It moves through three states:
//
//	Inactive --Activate--> Active --Close--> Closed
//	    ^                    |
//	    +--------Reset-------+
//
// Best-effort, fire-and-forget delivery: failed appends surface an error
// to the caller and are never retried internally.
//
// Basic usage:
//
//	cfg := appender.DefaultConfig()
//	cfg.Topic = "logs"
//	app, err := appender.New(cfg, appender.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer app.Close()
//
//	if err := app.Activate(ctx); err != nil {
//	    return err
//	}
//	err = app.Append(ctx, []byte("formatted log line"))
package appender
