// Package pixellink provides a full-duplex point-to-point data channel whose
// transmission medium is a shared, pixel-addressable surface rather than a
// network socket. Payloads are framed (magic + length), mapped onto RGB
// pixel triples, and recovered by the peer through a fixed-interval polling
// read of its mirrored scan region.
//
// Example usage:
//
//	cfg := pixellink.DefaultConfig()
//	cfg.Role = "a"
//	link, err := pixellink.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := link.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//	defer link.Stop()
package pixellink

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/santikzz/pixellink/internal/adapters/surfacefile"
	"github.com/santikzz/pixellink/internal/adapters/term"
	"github.com/santikzz/pixellink/internal/channel"
	"github.com/santikzz/pixellink/internal/cliconfig"
	"github.com/santikzz/pixellink/internal/domain"
	"github.com/santikzz/pixellink/internal/transport"
)

// Config holds the configuration for a link endpoint.
// Use DefaultConfig() to get a Config with sensible defaults; at minimum you
// must set Role before calling New.
type Config = cliconfig.Config

// DefaultConfig returns a Config with sensible default values.
// The role is deliberately unset: choosing an endpoint is always explicit.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Link is one endpoint of the pixel channel. Use New() to create an
// instance, then Start() to begin the exchange loop.
type Link struct {
	config    Config
	opts      options
	role      domain.Role
	lifecycle *channel.Lifecycle
	channel   *channel.Channel
	closer    func() error

	mu        sync.Mutex
	cancel    context.CancelFunc
	lastErr   error
	closeOnce sync.Once
}

// Err returns the error that crashed the session, if any.
func (l *Link) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// close releases the surface capability at most once.
func (l *Link) close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.closer != nil {
			err = l.closer()
		}
	})
	return err
}

// New creates a new Link with the given configuration.
// The instance is created in StateStopped; call Start() to begin.
// Returns an error if the configuration is invalid or the surface capability
// cannot be acquired.
func New(cfg Config, opts ...Option) (*Link, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(cfg.Role)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var closer func() error
	surface := o.surface
	if surface == nil {
		fs, err := surfacefile.Open(cfg.SurfacePath, cfg.Width)
		if err != nil {
			return nil, fmt.Errorf("acquire surface: %w", err)
		}
		surface = fs
		closer = fs.Close
	}

	console := o.console
	if console == nil {
		console = term.Stdio()
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}

	ch := channel.New(channel.Config{
		Role:            role,
		RegionRows:      cfg.RegionRows,
		PollInterval:    cfg.PollInterval,
		MaxPollAttempts: cfg.MaxPollAttempts,
	}, transport.New(surface), console, o.logger, emitter)

	return &Link{
		config:    cfg,
		opts:      o,
		role:      role,
		lifecycle: channel.NewLifecycle(o.logger, emitter),
		channel:   ch,
		closer:    closer,
	}, nil
}

// Start begins the exchange loop in the background.
// Returns immediately after starting the worker goroutine.
// Returns ErrAlreadyRunning if the link is already started.
func (l *Link) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := l.lifecycle.TransitionTo(channel.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.lifecycle.SetCancel(cancel)

	l.lifecycle.AddWorker()
	go func() {
		defer l.lifecycle.WorkerDone()

		if err := l.lifecycle.TransitionTo(channel.StateRunning, "channel starting"); err != nil {
			return
		}

		err := l.channel.Run(runCtx)

		switch {
		case err == nil:
			// Console closed; the session ended cleanly on its own.
			_ = l.lifecycle.TransitionTo(channel.StateStopped, "session ended")
		case err == context.Canceled || runCtx.Err() != nil:
			// Stop() owns the transition to Stopped.
		default:
			l.mu.Lock()
			l.lastErr = err
			l.mu.Unlock()
			_ = l.lifecycle.TransitionTo(channel.StateCrashed, err.Error())
		}
	}()

	return nil
}

// Stop gracefully shuts down the link and releases the surface capability.
// Returns nil on graceful shutdown, ErrShutdownTimeout if the worker had to
// be abandoned, ErrNotRunning if the link was not started.
func (l *Link) Stop() error {
	l.mu.Lock()

	if !l.lifecycle.CanStop() {
		l.mu.Unlock()
		return domain.ErrNotRunning
	}
	if err := l.lifecycle.TransitionTo(channel.StateStopping, "Stop() called"); err != nil {
		l.mu.Unlock()
		return err
	}
	if l.cancel != nil {
		l.cancel()
	}
	l.mu.Unlock()

	err := l.lifecycle.WaitWithTimeout(channel.ShutdownTimeout)

	if cerr := l.close(); cerr != nil && err == nil {
		err = cerr
	}

	if err != nil {
		_ = l.lifecycle.TransitionTo(channel.StateCrashed, "shutdown timeout")
	} else {
		_ = l.lifecycle.TransitionTo(channel.StateStopped, "graceful shutdown")
	}
	return err
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (l *Link) Status() State {
	return convertState(l.lifecycle.State())
}

// Role returns the endpoint role the link was configured with.
func (l *Link) Role() string {
	return l.role.String()
}

// Run creates a link, starts it, and blocks until the session ends (console
// closed, bounded poll exhausted, or ctx canceled). It is the one-call
// entrypoint the CLI uses.
func Run(ctx context.Context, cfg Config, opts ...Option) error {
	link, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	defer link.close()

	if err := link.Start(ctx); err != nil {
		return err
	}

	// Poll for completion the same way callers of the library would.
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := link.Stop(); err != nil && err != domain.ErrNotRunning {
				return err
			}
			return ctx.Err()
		case <-ticker.C:
			switch link.Status() {
			case StateStopped:
				return nil
			case StateCrashed:
				if err := link.Err(); err != nil {
					return err
				}
				return fmt.Errorf("pixellink: session crashed")
			}
		}
	}
}

// State represents the lifecycle state of a Link.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	return channel.State(s).String()
}

func convertState(s channel.State) State {
	switch s {
	case channel.StateStopped:
		return StateStopped
	case channel.StateStarting:
		return StateStarting
	case channel.StateRunning:
		return StateRunning
	case channel.StateStopping:
		return StateStopping
	case channel.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}
