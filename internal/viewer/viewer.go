// Package viewer renders the shared surface file live in a terminal.
//
// Every pixel of the watched area is drawn as a colored block character, so
// the frames crossing the surface are literally visible while two chat
// instances run. The view refreshes when the surface file changes (via
// fsnotify) and on a periodic fallback tick, since a peer rewriting bytes
// in place does not reliably produce an event on every platform.
package viewer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"

	"github.com/santikzz/pixellink/internal/adapters/surfacefile"
	"github.com/santikzz/pixellink/internal/ports"
)

// Options configures the surface viewer.
type Options struct {
	// SurfacePath is the surface file to watch.
	SurfacePath string

	// Width is the surface's horizontal resolution.
	Width int

	// Rows is how many surface rows to render, from row zero downward.
	Rows int

	// Refresh is the fallback redraw interval.
	Refresh time.Duration
}

// Run opens the surface read-only and renders it until the context is
// canceled or the user quits (q, ESC or Ctrl-C).
func Run(ctx context.Context, opts Options, logger ports.Logger) error {
	if opts.Refresh <= 0 {
		opts.Refresh = 500 * time.Millisecond
	}

	surface, err := surfacefile.OpenRead(opts.SurfacePath, opts.Width)
	if err != nil {
		return err
	}
	defer surface.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors and peers may replace the
	// file in place, which would silently detach a file-level watch.
	if err := watcher.Add(filepath.Dir(opts.SurfacePath)); err != nil {
		return fmt.Errorf("watch surface dir: %w", err)
	}

	logger.Info("viewer started",
		ports.String("surface", opts.SurfacePath),
		ports.Int("width", opts.Width),
		ports.Int("rows", opts.Rows),
	)

	// tcell's PollEvent blocks; pump it into a channel we can select on.
	// PollEvent returns nil after Fini, which unblocks the pump on exit; the
	// done select keeps it from hanging on a send nobody drains meanwhile.
	events := make(chan tcell.Event, 8)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(opts.Refresh)
	defer ticker.Stop()

	draw(screen, surface, opts)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventKey:
				if quitKey(e) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
				draw(screen, surface, opts)
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) == filepath.Clean(opts.SurfacePath) {
				draw(screen, surface, opts)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", ports.Err(err))

		case <-ticker.C:
			draw(screen, surface, opts)
		}
	}
}

func quitKey(e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return e.Rune() == 'q'
	}
	return false
}

func draw(screen tcell.Screen, surface *surfacefile.Surface, opts Options) {
	screen.Clear()
	screenW, screenH := screen.Size()

	rows := opts.Rows
	if rows > screenH-1 {
		rows = screenH - 1
	}
	cols := opts.Width
	if cols > screenW {
		cols = screenW
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c, err := surface.GetPixel(x, y)
			if err != nil {
				continue
			}
			if c.Zero() {
				screen.SetContent(x, y, '·', nil, tcell.StyleDefault.Foreground(tcell.ColorGray))
				continue
			}
			color := tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
			screen.SetContent(x, y, '█', nil, tcell.StyleDefault.Foreground(color))
		}
	}

	status := fmt.Sprintf(" %s  %dx%d  q to quit ", surface.Path(), opts.Width, opts.Rows)
	style := tcell.StyleDefault.Reverse(true)
	for i, r := range status {
		if i >= screenW {
			break
		}
		screen.SetContent(i, screenH-1, r, nil, style)
	}

	screen.Show()
}
