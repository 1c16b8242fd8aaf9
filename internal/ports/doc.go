// Package ports defines the interfaces (ports) that connect the protocol
// core to infrastructure adapters.
//
// Ports are the boundary between the core and the outside world: they state
// what the core needs from its environment without fixing how those needs
// are met.
//
// # Port Interfaces
//
//   - [Surface]: the pixel-addressable display capability the transport writes to
//   - [Console]: line-oriented text I/O for message exchange
//   - [Logger]: structured logging abstraction
//
// # Usage
//
// The transport and channel layers depend only on these interfaces.
// Adapters (internal/adapters) provide concrete implementations: an
// in-memory surface, a file-backed shared surface, a terminal console, a
// zerolog logger. This keeps the protocol testable with mock implementations
// and independent of any particular display or terminal stack.
package ports
