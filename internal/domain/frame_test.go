package domain

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{"empty", []byte{}},
		{"single byte", []byte{0x41}},
		{"abc", []byte{0x41, 0x42, 0x43}},
		{"not divisible by three", []byte("hello")},
		{"binary", []byte{0x00, 0xFF, 0x7F, 0x80, 0x01}},
		{"larger", bytes.Repeat([]byte{0xAB}, 4096)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := Encode(tt.payload)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if len(buf) != HeaderSize+len(tt.payload) {
				t.Errorf("encoded length = %d, want %d", len(buf), HeaderSize+len(tt.payload))
			}

			frame, ok := Decode(buf)
			if !ok {
				t.Fatal("Decode reported invalid for a freshly encoded frame")
			}
			if frame.Length != uint32(len(tt.payload)) {
				t.Errorf("Length = %d, want %d", frame.Length, len(tt.payload))
			}
			if !bytes.Equal(frame.Payload, tt.payload) {
				t.Errorf("Payload = %v, want %v", frame.Payload, tt.payload)
			}
		})
	}
}

func TestEncode_Layout(t *testing.T) {
	// Scenario: payload [0x41 0x42 0x43] yields magic ++ 0x00000003 ++ payload.
	buf, err := Encode([]byte{0x41, 0x42, 0x43})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if got := binary.LittleEndian.Uint32(buf[0:4]); got != Magic {
		t.Errorf("magic = %#x, want %#x", got, Magic)
	}
	if got := binary.LittleEndian.Uint32(buf[4:8]); got != 3 {
		t.Errorf("length = %d, want 3", got)
	}
	if !bytes.Equal(buf[8:], []byte{0x41, 0x42, 0x43}) {
		t.Errorf("payload bytes = %v", buf[8:])
	}
}

func TestEncode_EmptyPayload(t *testing.T) {
	buf, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(buf) != HeaderSize {
		t.Errorf("encoded length = %d, want header only (%d)", len(buf), HeaderSize)
	}

	frame, ok := Decode(buf)
	if !ok {
		t.Fatal("Decode reported invalid for an empty frame")
	}
	if frame.Length != 0 || len(frame.Payload) != 0 {
		t.Errorf("decoded frame = %+v, want empty payload", frame)
	}
}

func TestDecode_MagicRejection(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"all zeros", make([]byte, 64)},
		{"too short", []byte{0xBE, 0xBA, 0xFE}},
		{"wrong sentinel", append([]byte{0xDE, 0xAD, 0xBE, 0xEF}, make([]byte, 12)...)},
		{"off by one byte", append([]byte{0xBF, 0xBA, 0xFE, 0xCA}, make([]byte, 12)...)},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Decode(tt.buf); ok {
				t.Error("Decode accepted a buffer without the magic sentinel")
			}
		})
	}
}

func TestDecode_TruncatedPayload(t *testing.T) {
	buf, err := Encode([]byte("truncate me"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Header promises 11 bytes; every shorter buffer must read as invalid,
	// never as a partial frame.
	for cut := len(buf) - 1; cut >= HeaderSize; cut-- {
		if _, ok := Decode(buf[:cut]); ok {
			t.Errorf("Decode accepted a frame truncated to %d bytes", cut)
		}
	}
}

func TestDecode_DoesNotAliasInput(t *testing.T) {
	buf, err := Encode([]byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	frame, ok := Decode(buf)
	if !ok {
		t.Fatal("Decode reported invalid")
	}

	buf[HeaderSize] = 0xFF
	if frame.Payload[0] != 1 {
		t.Error("decoded payload aliases the input buffer")
	}
}

func TestDecodeHeader(t *testing.T) {
	buf, err := Encode([]byte("payload"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	length, ok := DecodeHeader(buf[:HeaderSize])
	if !ok {
		t.Fatal("DecodeHeader rejected a valid header")
	}
	if length != 7 {
		t.Errorf("length = %d, want 7", length)
	}

	if _, ok := DecodeHeader(buf[:HeaderSize-1]); ok {
		t.Error("DecodeHeader accepted a short buffer")
	}
	if _, ok := DecodeHeader(make([]byte, HeaderSize)); ok {
		t.Error("DecodeHeader accepted a blank header")
	}
}

func TestErrorSentinels(t *testing.T) {
	_, err := ParseRole("c")
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("ParseRole error = %v, want ErrInvalidRole", err)
	}
}
