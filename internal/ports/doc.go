// Package ports defines the interfaces that connect the appender core to
// transport adapters.
//
// The connection manager and the appender depend only on these
// interfaces; the adapters in internal/transport implement them with a
// raw TCP socket, a broker-client library, or an in-memory dry-run sink.
// Either strategy satisfies the same contract, so the appender never
// knows which one it is writing through.
package ports
