// Package domain contains the core value objects and error taxonomy for
// kafkalog.
//
// This is the innermost layer: no I/O, no logging, no dependencies on
// transports or configuration. It defines:
//
//   - The sentinel errors returned by the public API ([ErrNotConnected],
//     [ErrFrameTooLarge], ...), checkable with errors.Is.
//   - [FailureKind] and [Classify], the coarse taxonomy for asynchronous
//     broker transport errors.
package domain
