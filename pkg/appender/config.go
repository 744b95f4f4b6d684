package appender

import (
	"fmt"
	"strings"

	"github.com/dastra/kafkalog/internal/domain"
	"github.com/dastra/kafkalog/internal/ports"
)

// Configuration defaults. Values arrive already parsed; the appender
// only validates ranges and fills gaps.
const (
	DefaultHost    = "localhost"
	DefaultPort    = 9092
	DefaultTopic   = "default"
	DefaultVersion = "0.8.2.2"

	// PartitionAny is the sentinel partition meaning "broker decides".
	// On the wire it is the full 32-bit value 0xFFFFFFFF.
	PartitionAny int32 = -1

	minPort = 1
	maxPort = 65534
)

// Config holds the appender configuration. Use DefaultConfig() for a
// Config with the standard defaults.
type Config struct {
	// RemoteHost and Port locate the broker for the socket strategy.
	RemoteHost string
	Port       int

	// Topic is the destination topic. Required; defaults to "default".
	Topic string

	// Partition pins the destination partition for every record, fixed
	// at configuration time. PartitionAny leaves it to the broker.
	Partition int32

	// Version is the broker protocol version string.
	Version string

	// Brokers is the bootstrap broker list. When non-empty the appender
	// uses the broker-client transport strategy instead of the raw
	// socket.
	Brokers []string

	// DryRun builds frames without creating or writing any transport
	// resource. Test-only.
	DryRun bool
}

// DefaultConfig returns a Config with the standard defaults applied.
func DefaultConfig() Config {
	cfg := Config{Partition: PartitionAny}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills unset fields with their defaults. Partition is left
// alone: 0 is a valid partition, so the unassigned default comes from
// DefaultConfig rather than from a zero-value check.
func (c *Config) SetDefaults() {
	if c.RemoteHost == "" {
		c.RemoteHost = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Topic == "" {
		c.Topic = DefaultTopic
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.Topic == "" {
		return fmt.Errorf("%w: topic is required", domain.ErrInvalidConfig)
	}
	if c.Port < minPort || c.Port > maxPort {
		return fmt.Errorf("%w: port %d outside %d-%d", domain.ErrInvalidConfig, c.Port, minPort, maxPort)
	}
	if c.RemoteHost == "" && len(c.Brokers) == 0 {
		return fmt.Errorf("%w: remote host or brokers required", domain.ErrInvalidConfig)
	}
	return nil
}

// BrokerList returns the brokers comma-joined, the form used for
// storage and display.
func (c Config) BrokerList() string {
	return strings.Join(c.Brokers, ",")
}

// target builds the transport target for this configuration.
func (c Config) target() ports.Target {
	return ports.Target{
		Host:      c.RemoteHost,
		Port:      c.Port,
		Topic:     c.Topic,
		Partition: c.Partition,
		Brokers:   c.Brokers,
		Version:   c.Version,
	}
}
