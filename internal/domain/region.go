package domain

import (
	"fmt"
	"strings"
)

// Color is a single pixel value. One pixel carries three payload bytes.
type Color struct {
	R, G, B uint8
}

// Zero reports whether the pixel holds no channel data, the state of a
// blank (never written) surface position.
func (c Color) Zero() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Region is the origin of a read or write zone on the shared surface.
// Its width is implicit (the surface's horizontal resolution) and its height
// unbounded: writes wrap to x=0 on the next row when they reach the width.
type Region struct {
	X, Y int
}

// String returns a human-readable origin, e.g. "(0,10)".
func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)", r.X, r.Y)
}

// Role identifies which of the two symmetric endpoints a process acts as.
// Role assignment determines the read/write region pairing: A's write region
// is B's read region and vice versa.
type Role int

const (
	// RoleA initiates: it sends first, then awaits the reply.
	RoleA Role = iota + 1

	// RoleB responds: it awaits a message first, then sends the reply.
	RoleB
)

// ParseRole interprets the startup role selector. It accepts "a"/"b"
// (case-insensitive) as well as the numeric "1"/"2" spelling.
// An unrecognized selector is a fatal configuration error.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "1":
		return RoleA, nil
	case "b", "2":
		return RoleB, nil
	default:
		return 0, fmt.Errorf("%w: %q (want a, b, 1 or 2)", ErrInvalidRole, s)
	}
}

// String returns a human-readable representation of the role.
func (r Role) String() string {
	switch r {
	case RoleA:
		return "a"
	case RoleB:
		return "b"
	default:
		return "unknown"
	}
}

// Valid reports whether the role is one of the two recognized endpoints.
func (r Role) Valid() bool {
	return r == RoleA || r == RoleB
}

// Regions returns the write and read region origins for the role, with the
// two zones separated vertically by gap rows. The assignment is the mirror
// image between the roles: A writes where B reads and vice versa. Both
// processes must agree on gap (and on the surface width); that pairing is a
// deployment contract, not something the protocol enforces.
func (r Role) Regions(gap int) (write, read Region) {
	switch r {
	case RoleA:
		return Region{X: 0, Y: 0}, Region{X: 0, Y: gap}
	case RoleB:
		return Region{X: 0, Y: gap}, Region{X: 0, Y: 0}
	default:
		return Region{}, Region{}
	}
}
