package pixellink

import (
	logAdapter "github.com/santikzz/pixellink/internal/adapters/log"
	"github.com/santikzz/pixellink/internal/channel"
	"github.com/santikzz/pixellink/internal/domain"
	"github.com/santikzz/pixellink/internal/ports"
)

// Color is a single pixel value as carried by a Surface.
type Color = domain.Color

// Surface is the pixel-addressable display capability a link transmits over.
// Provide one with WithSurface to replace the default file-backed surface.
type Surface = ports.Surface

// Console is the line-oriented text capability used for message exchange.
type Console = ports.Console

// Logger is the interface for structured logging.
type Logger = ports.Logger

// LogField represents a structured log field.
type LogField = ports.Field

// Option configures optional behavior of a Link.
type Option func(*options)

// options holds the optional dependencies for a Link instance.
type options struct {
	surface      ports.Surface
	console      ports.Console
	logger       ports.Logger
	eventHandler EventHandler
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: logAdapter.NewNoopLogger(),
	}
}

// WithSurface injects a custom surface capability.
// If not provided, a file-backed surface is opened at Config.SurfacePath.
func WithSurface(surface Surface) Option {
	return func(o *options) {
		o.surface = surface
	}
}

// WithConsole injects a custom console capability.
// If not provided, the process's stdin and stdout are used.
func WithConsole(console Console) Option {
	return func(o *options) {
		o.console = console
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for link events.
// Events are called synchronously from the channel goroutine.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// EventHandler receives notifications about link activity.
type EventHandler interface {
	// OnStateChange is called on every lifecycle transition.
	OnStateChange(event StateChangeEvent)

	// OnMessageSent is called after a frame has been written to the surface.
	OnMessageSent(event MessageEvent)

	// OnMessageReceived is called after a valid frame has been consumed.
	OnMessageReceived(event MessageEvent)
}

// StateChangeEvent describes a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// MessageEvent describes one message crossing the surface.
type MessageEvent struct {
	Payload []byte
}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current channel.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnMessageSent(payload []byte) {
	if e.handler == nil {
		return
	}
	e.handler.OnMessageSent(MessageEvent{Payload: payload})
}

func (e *eventEmitterWrapper) OnMessageReceived(payload []byte) {
	if e.handler == nil {
		return
	}
	e.handler.OnMessageReceived(MessageEvent{Payload: payload})
}
