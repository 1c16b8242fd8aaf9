// Package domain contains the core entities and value objects for pixellink.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (display access, terminals,
// logging) and contains only the wire format and the protocol's pure rules.
//
// # Entities
//
//   - [Frame]: one transmitted message (magic + length + payload)
//   - [Color]: a single pixel value, three bytes of channel data
//   - [Region]: the origin of a read or write zone on the shared surface
//   - [Role]: which of the two symmetric endpoints a process acts as
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Focused on wire-format rules and invariants
//   - Testable without mocks or external systems
package domain
