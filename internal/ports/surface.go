package ports

import "github.com/santikzz/pixellink/internal/domain"

// Surface is the pixel-addressable display capability the transport runs on.
// It must remain available for the lifetime of the process.
//
// Implementations are not required to be safe for concurrent use; the
// transport serializes every access behind its own lock. They must present
// never-written positions as the zero Color so that a blank surface decodes
// as "no frame present" rather than as data.
type Surface interface {
	// SetPixel stores one color value at (x, y).
	SetPixel(x, y int, c domain.Color) error

	// GetPixel returns the color value currently at (x, y), whatever it
	// holds. It never blocks waiting for data to appear.
	GetPixel(x, y int) (domain.Color, error)

	// Width returns the surface's horizontal resolution, the bound at which
	// the scan cursor wraps to the next row.
	Width() int
}
