// Package transport provides the ports.Transport implementations:
//
//   - [TCP]: a hand-rolled socket strategy writing full wire frames.
//   - [Kafka]: delegation to the segmentio/kafka-go client with
//     fire-and-forget acks.
//   - [DryRun]: no I/O; records the frames that would have been sent.
//
// All three satisfy the same connection-manager contract and are
// interchangeable behind it.
package transport
