package domain

import "errors"

// Domain errors represent error conditions in the pixellink domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrPayloadTooLarge is returned by Encode when the payload exceeds the
	// 32-bit length field.
	ErrPayloadTooLarge = errors.New("pixellink: payload too large")

	// ErrInvalidRole is returned when the role selector is not one of the
	// two recognized endpoints.
	ErrInvalidRole = errors.New("pixellink: invalid role")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("pixellink: invalid configuration")

	// ErrAlreadyRunning is returned when Start() is called on a running link.
	ErrAlreadyRunning = errors.New("pixellink: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped link.
	ErrNotRunning = errors.New("pixellink: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("pixellink: shutdown timeout")

	// ErrConsoleClosed is returned when line input reaches end of stream.
	ErrConsoleClosed = errors.New("pixellink: console closed")

	// ErrPollTimeout is returned when a bounded poll gives up waiting for
	// the peer. Never returned in the default unbounded configuration.
	ErrPollTimeout = errors.New("pixellink: poll attempts exhausted")
)
