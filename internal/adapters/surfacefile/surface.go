// Package surfacefile implements ports.Surface over a regular file.
//
// The file holds raw pixel data, three bytes per pixel, row-major at a fixed
// width: pixel (x, y) lives at byte offset (y*width + x) * 3. Reads past the
// current end of file return the zero color, so an untouched file behaves
// like a blank display. Writes extend the file as needed.
//
// Because the file lives on a shared filesystem path, two independent
// processes that open the same path see each other's pixels. That makes this
// adapter the shared surface for real two-process operation. Like the
// display it stands in for, the file carries no cross-process lock: the
// frame codec's magic check is the only defense against reading a surface
// mid-update by the peer.
package surfacefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/santikzz/pixellink/internal/domain"
)

const bytesPerPixel = 3

// Surface is a file-backed pixel surface.
type Surface struct {
	f     *os.File
	width int
}

// Open opens (creating if absent) the surface file at path with the given
// horizontal resolution. Both peers must open the same path with the same
// width; that pairing is a deployment contract the file does not record.
func Open(path string, width int) (*Surface, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: surface width must be positive", domain.ErrInvalidConfig)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open surface file: %w", err)
	}
	return &Surface{f: f, width: width}, nil
}

// OpenRead opens the surface file read-only, for viewers and snapshots.
// A missing file is an error here: there is nothing to look at yet.
func OpenRead(path string, width int) (*Surface, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: surface width must be positive", domain.ErrInvalidConfig)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open surface file: %w", err)
	}
	return &Surface{f: f, width: width}, nil
}

// SetPixel writes one pixel at its fixed file offset, extending the file if
// the position lies beyond the current end.
func (s *Surface) SetPixel(x, y int, c domain.Color) error {
	off, err := s.offset(x, y)
	if err != nil {
		return err
	}
	if _, err := s.f.WriteAt([]byte{c.R, c.G, c.B}, off); err != nil {
		return fmt.Errorf("write pixel (%d,%d): %w", x, y, err)
	}
	return nil
}

// GetPixel reads one pixel from its fixed file offset. Positions at or past
// the end of file are blank, not errors.
func (s *Surface) GetPixel(x, y int) (domain.Color, error) {
	off, err := s.offset(x, y)
	if err != nil {
		return domain.Color{}, err
	}

	// A short read at EOF leaves the remaining channels zero.
	var buf [bytesPerPixel]byte
	if _, err := s.f.ReadAt(buf[:], off); err != nil && !errors.Is(err, io.EOF) {
		return domain.Color{}, fmt.Errorf("read pixel (%d,%d): %w", x, y, err)
	}
	return domain.Color{R: buf[0], G: buf[1], B: buf[2]}, nil
}

// Width returns the horizontal resolution.
func (s *Surface) Width() int {
	return s.width
}

// Close releases the underlying file handle.
func (s *Surface) Close() error {
	return s.f.Close()
}

// Path returns the surface file path.
func (s *Surface) Path() string {
	return s.f.Name()
}

func (s *Surface) offset(x, y int) (int64, error) {
	if x < 0 || x >= s.width || y < 0 {
		return 0, fmt.Errorf("pixel (%d,%d) outside surface of width %d", x, y, s.width)
	}
	return (int64(y)*int64(s.width) + int64(x)) * bytesPerPixel, nil
}
