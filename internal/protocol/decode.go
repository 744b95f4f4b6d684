package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

// ErrMalformedFrame is returned by Decode when a length prefix does not
// match the bytes that follow it, or the frame is truncated.
var ErrMalformedFrame = errors.New("kafkalog: malformed frame")

// ErrChecksumMismatch is returned by Decode when the payload CRC-32 does
// not match the checksum carried in the frame.
var ErrChecksumMismatch = errors.New("kafkalog: checksum mismatch")

// Decoded is the result of taking a wire frame apart.
type Decoded struct {
	Topic     string
	Partition int32
	Magic     byte
	Checksum  uint32
	Payload   []byte
}

// Decode parses a complete wire frame, checking every length prefix
// against the bytes it delimits and verifying the payload checksum.
// Decode(Encode(p, t, n)) reconstructs p, t and n exactly.
func Decode(frame []byte) (Decoded, error) {
	var d Decoded

	if len(frame) < 4 {
		return d, fmt.Errorf("%w: %d bytes, need at least 4", ErrMalformedFrame, len(frame))
	}
	requestLen := binary.BigEndian.Uint32(frame[:4])
	rest := frame[4:]
	if uint32(len(rest)) != requestLen {
		return d, fmt.Errorf("%w: frame length prefix %d, got %d bytes",
			ErrMalformedFrame, requestLen, len(rest))
	}

	// Request envelope header.
	if len(rest) < requestHeaderLen {
		return d, fmt.Errorf("%w: truncated request envelope", ErrMalformedFrame)
	}
	if reqType := binary.BigEndian.Uint16(rest[:2]); reqType != ProduceRequestType {
		return d, fmt.Errorf("%w: unexpected request type %d", ErrMalformedFrame, reqType)
	}
	topicLen := int(binary.BigEndian.Uint16(rest[2:4]))
	rest = rest[4:]
	if len(rest) < topicLen+4+4 {
		return d, fmt.Errorf("%w: truncated topic", ErrMalformedFrame)
	}
	d.Topic = string(rest[:topicLen])
	rest = rest[topicLen:]
	d.Partition = int32(binary.BigEndian.Uint32(rest[:4]))
	messageLen := binary.BigEndian.Uint32(rest[4:8])
	rest = rest[8:]
	if uint32(len(rest)) != messageLen {
		return d, fmt.Errorf("%w: message length prefix %d, got %d bytes",
			ErrMalformedFrame, messageLen, len(rest))
	}

	// Checksum envelope.
	if len(rest) < checksumHeaderLen {
		return d, fmt.Errorf("%w: truncated checksum envelope", ErrMalformedFrame)
	}
	d.Magic = rest[0]
	d.Checksum = binary.BigEndian.Uint32(rest[1:5])
	d.Payload = rest[5:]

	if sum := crc32.ChecksumIEEE(d.Payload); sum != d.Checksum {
		return d, fmt.Errorf("%w: frame carries %#08x, payload sums to %#08x",
			ErrChecksumMismatch, d.Checksum, sum)
	}

	return d, nil
}
