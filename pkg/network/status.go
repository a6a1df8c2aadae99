package network

import "fmt"

// Status is the externally reported build verdict.
type Status int

const (
	// StatusIndeterminate means the planarity check gave up before reaching
	// a verdict (recursion ceiling hit). It is never reported as buildable.
	StatusIndeterminate Status = -1

	// StatusUnbuildable means the highways cannot be built without crossings,
	// or the input was malformed.
	StatusUnbuildable Status = 0

	// StatusBuildable means the highways can be built without crossings.
	StatusBuildable Status = 1
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusBuildable:
		return "buildable"
	case StatusUnbuildable:
		return "unbuildable"
	case StatusIndeterminate:
		return "indeterminate"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}
