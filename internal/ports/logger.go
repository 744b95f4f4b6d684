package ports

import "github.com/dastra/kafkalog/pkg/log"

// Logger is the structured logging interface used throughout the module.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Field constructors re-exported from pkg/log.
var (
	String   = log.String
	Int      = log.Int
	Int32    = log.Int32
	Uint32   = log.Uint32
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err
)
