// Package transport maps frame bytes onto pixel color triples and back.
//
// Bytes are grouped three per pixel (R, G, B) and written row-major from a
// region's origin, wrapping to x=0 on the next row at the surface's
// horizontal resolution. A trailing partial group is zero-padded up to a
// full pixel; the padding is never counted in the frame's length field, so
// receivers rely solely on that field to find the payload end.
//
// All surface access within a process goes through a single coarse lock, so
// no two local pixel operations ever interleave. Nothing synchronizes the
// peer process: a read can observe the peer's write mid-flight, and the
// magic check in the codec is the only safety net. See the package tests for
// the partial-write behavior this implies.
package transport

import (
	"fmt"
	"sync"

	"github.com/santikzz/pixellink/internal/domain"
	"github.com/santikzz/pixellink/internal/ports"
)

// Transport performs locked pixel scans against a shared surface.
type Transport struct {
	mu      sync.Mutex
	surface ports.Surface
}

// New creates a transport over the given surface.
func New(surface ports.Surface) *Transport {
	return &Transport{surface: surface}
}

// cursor is a scan position. It advances one pixel at a time and wraps to
// the next row at the surface width.
type cursor struct {
	x, y int
}

func (t *Transport) advance(c *cursor) {
	c.x++
	if c.x >= t.surface.Width() {
		c.x = 0
		c.y++
	}
}

// Write renders buf into the region as consecutive color triples, holding
// the surface lock for the duration of the call. A final partial triple is
// zero-filled. There is no partial-write recovery: an error mid-sequence
// leaves the region with mixed old and new pixels.
func (t *Transport) Write(region domain.Region, buf []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := cursor{x: region.X, y: region.Y}
	return t.writeLocked(&cur, buf)
}

func (t *Transport) writeLocked(cur *cursor, buf []byte) error {
	for i := 0; i < len(buf); i += 3 {
		var c domain.Color
		c.R = buf[i]
		if i+1 < len(buf) {
			c.G = buf[i+1]
		}
		if i+2 < len(buf) {
			c.B = buf[i+2]
		}
		if err := t.surface.SetPixel(cur.x, cur.y, c); err != nil {
			return fmt.Errorf("set pixel at (%d,%d): %w", cur.x, cur.y, err)
		}
		t.advance(cur)
	}
	return nil
}

// Read collects exactly n bytes from the region's origin forward, holding
// the surface lock for the duration of the call. It reads whatever pixel
// values currently occupy the coordinates, valid or not, and never blocks
// waiting for data; distinguishing data from stale surface content is the
// codec's job.
func (t *Transport) Read(region domain.Region, n int) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := cursor{x: region.X, y: region.Y}
	return t.readLocked(&cur, n)
}

func (t *Transport) readLocked(cur *cursor, n int) ([]byte, error) {
	buf := make([]byte, 0, n+2)
	for len(buf) < n {
		c, err := t.surface.GetPixel(cur.x, cur.y)
		if err != nil {
			return nil, fmt.Errorf("get pixel at (%d,%d): %w", cur.x, cur.y, err)
		}
		buf = append(buf, c.R, c.G, c.B)
		t.advance(cur)
	}
	return buf[:n], nil
}

// SendFrame encodes payload and writes the resulting frame into the region,
// header and payload each starting on their own pixel: the 8 header bytes
// fill three pixels (the third zero-padded), the payload begins at the
// fourth. ReceiveFrame's pixel-granular header scan depends on exactly this
// alignment. The oversized-payload check happens before any pixel is
// touched.
func (t *Transport) SendFrame(region domain.Region, payload []byte) error {
	buf, err := domain.Encode(payload)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	cur := cursor{x: region.X, y: region.Y}
	if err := t.writeLocked(&cur, buf[:domain.HeaderSize]); err != nil {
		return err
	}
	return t.writeLocked(&cur, buf[domain.HeaderSize:])
}

// ReceiveFrame attempts a two-phase frame read from the region: the fixed
// 8-byte header first (three whole pixels, the pad byte ignored), then, only
// if the magic sentinel matches, exactly the announced number of payload
// bytes starting at the fourth pixel, where SendFrame placed them. Both
// phases happen under one lock acquisition.
//
// ok=false with a nil error is the routine steady state while waiting for
// the peer; the caller retries after its poll interval.
func (t *Transport) ReceiveFrame(region domain.Region) (payload []byte, ok bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := cursor{x: region.X, y: region.Y}
	header, err := t.readLocked(&cur, domain.HeaderSize)
	if err != nil {
		return nil, false, err
	}

	length, ok := domain.DecodeHeader(header)
	if !ok {
		return nil, false, nil
	}

	payload, err = t.readLocked(&cur, int(length))
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

// Clear stamps out the frame header at the region's origin by zeroing its
// pixels, so a consumed frame stops decoding as valid on the next poll.
// The payload pixels are left in place; without the sentinel they are
// indistinguishable from stale surface content.
func (t *Transport) Clear(region domain.Region) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Header pixels: HeaderSize bytes rounded up to whole triples.
	blank := make([]byte, (domain.HeaderSize+2)/3*3)
	cur := cursor{x: region.X, y: region.Y}
	return t.writeLocked(&cur, blank)
}
