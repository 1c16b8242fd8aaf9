package domain

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Wire format constants. The header is a fixed magic sentinel followed by the
// payload byte count, both little-endian:
//
//	offset 0..3 : magic   (0xCAFEBABE)
//	offset 4..7 : length  (uint32, payload byte count)
//	offset 8..  : payload (length opaque bytes)
const (
	// Magic marks a region as holding a complete frame. Anything else is
	// stale or blank surface content.
	Magic uint32 = 0xCAFEBABE

	// HeaderSize is the fixed byte length of the magic and length fields.
	HeaderSize = 8

	// MaxPayloadSize is the largest payload representable in the length field.
	MaxPayloadSize = math.MaxUint32
)

// Frame is the unit of transmission: one framed message recovered from or
// destined for the shared surface. The payload is opaque to the codec.
type Frame struct {
	// Length is the payload byte count as carried in the header.
	Length uint32

	// Payload holds exactly Length raw bytes.
	Payload []byte
}

// Encode serializes a payload into a self-describing frame buffer.
// It is a pure transformation with no side effects.
// Returns ErrPayloadTooLarge if the payload cannot be represented in the
// 32-bit length field; nothing is written in that case.
func Encode(payload []byte) ([]byte, error) {
	if uint64(len(payload)) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}

	buf := make([]byte, HeaderSize+len(payload))
	binary.LittleEndian.PutUint32(buf[0:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(payload)))
	copy(buf[HeaderSize:], payload)
	return buf, nil
}

// Decode parses a frame from buf. A magic mismatch is not an error: it is
// the routine "no frame present" signal while polling, reported as ok=false.
// A buffer shorter than the header, or one that does not carry the full
// payload its length field promises, is likewise reported as ok=false.
func Decode(buf []byte) (Frame, bool) {
	length, ok := DecodeHeader(buf)
	if !ok {
		return Frame{}, false
	}
	if uint64(len(buf)) < HeaderSize+uint64(length) {
		return Frame{}, false
	}

	payload := make([]byte, length)
	copy(payload, buf[HeaderSize:HeaderSize+int(length)])
	return Frame{Length: length, Payload: payload}, true
}

// DecodeHeader validates the magic sentinel in the first HeaderSize bytes of
// buf and returns the announced payload length. ok=false means no valid
// frame starts here; the caller should keep polling.
func DecodeHeader(buf []byte) (length uint32, ok bool) {
	if len(buf) < HeaderSize {
		return 0, false
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != Magic {
		return 0, false
	}
	return binary.LittleEndian.Uint32(buf[4:8]), true
}
