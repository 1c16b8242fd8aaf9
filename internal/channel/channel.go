// Package channel implements the per-instance send/receive sequencing loop
// on top of the frame codec and pixel transport, plus the lifecycle state
// machine the public facade drives.
package channel

import (
	"context"
	"errors"
	"time"

	"github.com/santikzz/pixellink/internal/domain"
	"github.com/santikzz/pixellink/internal/ports"
	"github.com/santikzz/pixellink/internal/transport"
)

// Prompt and display labels, fixed to match the original exchange format.
const (
	promptYou = "You: "
	labelThem = "Them: "
)

// Config holds the runtime parameters of one channel endpoint.
type Config struct {
	// Role selects the endpoint and, through it, the region pairing.
	Role domain.Role

	// RegionRows is the vertical gap between the two scan regions.
	RegionRows int

	// PollInterval is the fixed delay between receive attempts.
	PollInterval time.Duration

	// MaxPollAttempts bounds a single wait for the peer. Zero preserves the
	// original contract: poll forever.
	MaxPollAttempts int
}

// Phase is the position of the role loop within one exchange.
type Phase int

const (
	PhaseAwaitingInput Phase = iota
	PhaseWriting
	PhasePolling
)

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingInput:
		return "AwaitingInput"
	case PhaseWriting:
		return "Writing"
	case PhasePolling:
		return "Polling"
	default:
		return "Unknown"
	}
}

// MessageEventEmitter is called as messages cross the surface.
type MessageEventEmitter interface {
	OnMessageSent(payload []byte)
	OnMessageReceived(payload []byte)
}

// Channel runs one endpoint of the pixel link.
type Channel struct {
	cfg       Config
	transport *transport.Transport
	console   ports.Console
	logger    ports.Logger
	emitter   MessageEventEmitter

	write domain.Region
	read  domain.Region
}

// New creates a channel endpoint. The emitter may be nil.
func New(cfg Config, tr *transport.Transport, console ports.Console, logger ports.Logger, emitter MessageEventEmitter) *Channel {
	write, read := cfg.Role.Regions(cfg.RegionRows)
	return &Channel{
		cfg:       cfg,
		transport: tr,
		console:   console,
		logger:    logger,
		emitter:   emitter,
		write:     write,
		read:      read,
	}
}

// Run executes the role loop until the context is canceled, the console
// closes, or a bounded poll gives up. Role A sends first; role B waits for
// the opening message. A closed console ends the session with a nil error.
func (c *Channel) Run(ctx context.Context) error {
	c.logger.Info("channel starting",
		ports.String("role", c.cfg.Role.String()),
		ports.String("write_region", c.write.String()),
		ports.String("read_region", c.read.String()),
		ports.Duration("poll_interval", c.cfg.PollInterval),
	)

	var err error
	switch c.cfg.Role {
	case domain.RoleA:
		err = c.runInitiator(ctx)
	case domain.RoleB:
		err = c.runResponder(ctx)
	default:
		return domain.ErrInvalidRole
	}

	if errors.Is(err, domain.ErrConsoleClosed) {
		c.logger.Info("console closed, channel done")
		return nil
	}
	return err
}

// runInitiator: input, send, then poll for the reply. Repeats forever.
func (c *Channel) runInitiator(ctx context.Context) error {
	for {
		if err := c.exchangeOut(ctx); err != nil {
			return err
		}
		if err := c.exchangeIn(ctx); err != nil {
			return err
		}
	}
}

// runResponder: poll for a message first, then send the reply. Repeats forever.
func (c *Channel) runResponder(ctx context.Context) error {
	for {
		if err := c.exchangeIn(ctx); err != nil {
			return err
		}
		if err := c.exchangeOut(ctx); err != nil {
			return err
		}
	}
}

// exchangeOut blocks on user input and writes the framed message into the
// local write region.
func (c *Channel) exchangeOut(ctx context.Context) error {
	c.setPhase(PhaseAwaitingInput)
	line, err := c.console.ReadLine(promptYou)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	c.setPhase(PhaseWriting)
	payload := []byte(line)
	if err := c.transport.SendFrame(c.write, payload); err != nil {
		return err
	}

	c.logger.Debug("frame sent", ports.Int("payload_bytes", len(payload)))
	if c.emitter != nil {
		c.emitter.OnMessageSent(payload)
	}
	return nil
}

// exchangeIn polls the local read region until a valid frame appears, then
// displays it and clears the consumed header so the same frame is not
// delivered twice.
func (c *Channel) exchangeIn(ctx context.Context) error {
	c.setPhase(PhasePolling)

	payload, err := c.awaitFrame(ctx)
	if err != nil {
		return err
	}

	c.logger.Debug("frame received", ports.Int("payload_bytes", len(payload)))
	if c.emitter != nil {
		c.emitter.OnMessageReceived(payload)
	}
	return c.console.WriteLine(labelThem + string(payload))
}

// awaitFrame retries the two-phase read at the fixed poll interval until a
// valid frame is obtained. A magic mismatch is the expected steady state
// while waiting, not an error. Surface I/O errors are retried with
// exponential backoff instead of the fixed interval.
func (c *Channel) awaitFrame(ctx context.Context) ([]byte, error) {
	bo := newBackoff(DefaultBackoffInitial, DefaultBackoffMax)
	attempts := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		payload, ok, err := c.transport.ReceiveFrame(c.read)
		if err != nil {
			c.logger.Error("surface read failed", ports.Err(err))
			if err := sleepCtx(ctx, bo.Next()); err != nil {
				return nil, err
			}
			continue
		}
		bo.Reset()

		if ok {
			// Consume the frame so the next poll cycle does not replay it.
			if err := c.transport.Clear(c.read); err != nil {
				c.logger.Warn("failed to clear consumed frame", ports.Err(err))
			}
			return payload, nil
		}

		attempts++
		if c.cfg.MaxPollAttempts > 0 && attempts >= c.cfg.MaxPollAttempts {
			return nil, domain.ErrPollTimeout
		}
		if err := sleepCtx(ctx, c.cfg.PollInterval); err != nil {
			return nil, err
		}
	}
}

func (c *Channel) setPhase(p Phase) {
	c.logger.Debug("phase", ports.String("phase", p.String()))
}

// sleepCtx sleeps for d or until the context is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
