// Package memory provides an in-memory implementation of ports.Surface.
//
// It backs the test suite and in-process demos: two channels handed the same
// *Surface communicate exactly as two processes would over a real display.
package memory

import (
	"fmt"
	"sync"

	"github.com/santikzz/pixellink/internal/domain"
)

// Surface is a pixel grid of fixed width and unbounded height. Rows are
// allocated on demand as writes grow the surface downward. Positions never
// written read back as the zero color, matching a blank display.
//
// Surface is safe for concurrent use so it can stand in for a display
// shared by two independent channel instances.
type Surface struct {
	mu    sync.Mutex
	width int
	rows  [][]domain.Color
}

// New creates a blank surface with the given horizontal resolution.
func New(width int) *Surface {
	if width <= 0 {
		width = 1
	}
	return &Surface{width: width}
}

// SetPixel stores one color value, growing the surface as needed.
func (s *Surface) SetPixel(x, y int, c domain.Color) error {
	if err := s.check(x, y); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for y >= len(s.rows) {
		s.rows = append(s.rows, make([]domain.Color, s.width))
	}
	s.rows[y][x] = c
	return nil
}

// GetPixel returns the color at (x, y); unwritten positions are zero.
func (s *Surface) GetPixel(x, y int) (domain.Color, error) {
	if err := s.check(x, y); err != nil {
		return domain.Color{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if y >= len(s.rows) {
		return domain.Color{}, nil
	}
	return s.rows[y][x], nil
}

// Width returns the horizontal resolution.
func (s *Surface) Width() int {
	return s.width
}

func (s *Surface) check(x, y int) error {
	if x < 0 || x >= s.width || y < 0 {
		return fmt.Errorf("pixel (%d,%d) outside surface of width %d", x, y, s.width)
	}
	return nil
}
