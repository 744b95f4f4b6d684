package protocol

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/dastra/kafkalog/internal/domain"
)

// Wire format constants. These are fixed by the broker protocol version
// this sink speaks; a decoder uses the magic byte to detect format changes.
const (
	// MagicByte is the 1-byte format-version tag prepended to every
	// checksum envelope.
	MagicByte byte = 0

	// ProduceRequestType is the request-type tag of a produce request.
	ProduceRequestType uint16 = 0

	// MaxTopicLen is the largest topic that fits its 2-byte length prefix.
	MaxTopicLen = math.MaxUint16
)

// Envelope header sizes in bytes.
const (
	checksumHeaderLen = 1 + 4     // magic + CRC-32
	requestHeaderLen  = 2 + 2 + 4 // request type + topic length + partition
)

// Frame is a single encoded produce request, carrying both the raw
// payload (for broker-client transports, which frame on their own) and
// the fully encoded wire form (for socket transports and dry-run
// observation).
type Frame struct {
	Topic     string
	Partition int32
	Payload   []byte
	Wire      []byte
}

// NewFrame encodes payload for topic/partition and returns the frame.
// It fails with a domain.ErrFrameTooLarge error if any field exceeds the
// range of its length prefix.
func NewFrame(payload []byte, topic string, partition int32) (Frame, error) {
	wire, err := Encode(payload, topic, partition)
	if err != nil {
		return Frame{}, err
	}
	return Frame{
		Topic:     topic,
		Partition: partition,
		Payload:   payload,
		Wire:      wire,
	}, nil
}

// Encode builds the complete wire frame for one payload.
//
// Encode is total and side-effect free for any input within the length
// bounds: topic must fit a 2-byte length, payload and envelopes their
// 4-byte lengths.
func Encode(payload []byte, topic string, partition int32) ([]byte, error) {
	if len(topic) > MaxTopicLen {
		return nil, fmt.Errorf("%w: topic is %d bytes, limit %d",
			domain.ErrFrameTooLarge, len(topic), MaxTopicLen)
	}
	messageLen := checksumHeaderLen + len(payload)
	if uint64(messageLen) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload is %d bytes", domain.ErrFrameTooLarge, len(payload))
	}
	requestLen := requestHeaderLen + len(topic) + 4 + messageLen
	if uint64(requestLen) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: request is %d bytes", domain.ErrFrameTooLarge, requestLen)
	}

	buf := make([]byte, 0, 4+requestLen)

	// Wire frame: total request length.
	buf = binary.BigEndian.AppendUint32(buf, uint32(requestLen))

	// Request envelope.
	buf = binary.BigEndian.AppendUint16(buf, ProduceRequestType)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(topic)))
	buf = append(buf, topic...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(partition))
	buf = binary.BigEndian.AppendUint32(buf, uint32(messageLen))

	// Checksum envelope.
	buf = append(buf, MagicByte)
	buf = binary.BigEndian.AppendUint32(buf, crc32.ChecksumIEEE(payload))
	buf = append(buf, payload...)

	return buf, nil
}
