package transport

import (
	"context"
	"errors"

	"github.com/segmentio/kafka-go"

	"github.com/dastra/kafkalog/internal/ports"
	"github.com/dastra/kafkalog/internal/protocol"
)

// Kafka is the broker-client transport strategy: frames are handed to
// the kafka-go writer as raw payloads with fire-and-forget (zero
// required-acks) semantics, and the client library does its own wire
// framing.
type Kafka struct {
	logger  ports.Logger
	onError ports.ErrorFunc
}

// NewKafka creates a broker-client transport. onError, when non-nil,
// receives asynchronous delivery failures from the writer's completion
// callback; it runs on the writer's goroutines and must not block.
func NewKafka(logger ports.Logger, onError ports.ErrorFunc) *Kafka {
	return &Kafka{logger: logger, onError: onError}
}

// Open builds a writer bound to the target topic. No connection is
// dialed yet; the client connects on first write, which keeps Open cheap
// and surfaces broker availability as a write error.
func (k *Kafka) Open(ctx context.Context, target ports.Target) (ports.Conn, error) {
	brokers := target.Brokers
	if len(brokers) == 0 {
		brokers = []string{target.Addr()}
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        target.Topic,
		RequiredAcks: kafka.RequireNone,
		Balancer:     balancerFor(target.Partition),
		Completion:   k.completion,
	}
	return &kafkaConn{writer: w}, nil
}

// completion is invoked by the writer after each delivery attempt,
// asynchronously with respect to Produce.
func (k *Kafka) completion(messages []kafka.Message, err error) {
	if err == nil || k.onError == nil {
		return
	}
	var code int32
	var kerr kafka.Error
	if errors.As(err, &kerr) {
		code = int32(kerr)
	}
	k.onError(code, err.Error())
}

// balancerFor pins writes to the configured partition, or lets the
// writer's default distribution decide when the partition is the
// unassigned sentinel.
func balancerFor(partition int32) kafka.Balancer {
	if partition < 0 {
		return &kafka.LeastBytes{}
	}
	return fixedBalancer(partition)
}

// fixedBalancer always selects the same partition.
type fixedBalancer int32

func (b fixedBalancer) Balance(msg kafka.Message, partitions ...int) int {
	return int(b)
}

type kafkaConn struct {
	writer *kafka.Writer
}

// Produce hands the raw payload to the client library; the broker
// protocol framing is the library's concern on this path.
func (c *kafkaConn) Produce(ctx context.Context, frame protocol.Frame) error {
	return c.writer.WriteMessages(ctx, kafka.Message{Value: frame.Payload})
}

func (c *kafkaConn) Close() error {
	return c.writer.Close()
}
