// Package snapshot exports the shared surface to a PNG image.
//
// A raw 1:1 dump of the scan regions is a few rows of near-black pixels;
// the export scales the image up with nearest-neighbor so individual frame
// pixels stay sharp and visible.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/santikzz/pixellink/internal/adapters/surfacefile"
)

// Options configures a surface export.
type Options struct {
	// SurfacePath is the surface file to export.
	SurfacePath string

	// Width is the surface's horizontal resolution.
	Width int

	// Rows is how many surface rows to export, from row zero downward.
	Rows int

	// Scale is the integer zoom factor applied to the output.
	Scale int

	// OutPath is the PNG file to write.
	OutPath string
}

// Write reads the surface and writes the scaled PNG.
func Write(opts Options) error {
	if opts.Rows <= 0 {
		return fmt.Errorf("snapshot rows must be positive")
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	surface, err := surfacefile.OpenRead(opts.SurfacePath, opts.Width)
	if err != nil {
		return err
	}
	defer surface.Close()

	src := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Rows))
	for y := 0; y < opts.Rows; y++ {
		for x := 0; x < opts.Width; x++ {
			c, err := surface.GetPixel(x, y)
			if err != nil {
				return err
			}
			src.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
		}
	}

	out := src
	if opts.Scale > 1 {
		out = image.NewRGBA(image.Rect(0, 0, opts.Width*opts.Scale, opts.Rows*opts.Scale))
		xdraw.NearestNeighbor.Scale(out, out.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	}

	f, err := os.Create(opts.OutPath)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	if err := png.Encode(f, out); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}
