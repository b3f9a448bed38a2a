package transportorder

import (
	"fmt"
	"strings"

	"tms/internal/pkg/errs"
)

// Priority orders the execution of transport orders. It is not interpreted by
// the aggregate; schedulers sort by it (highest first).
type Priority int

const (
	UnknownPriority Priority = iota
	Lowest
	Low
	Normal
	High
	Highest
)

// DefaultPriority is assigned to new orders.
const DefaultPriority = Normal

var priorityNames = map[Priority]string{
	Lowest:  "LOWEST",
	Low:     "LOW",
	Normal:  "NORMAL",
	High:    "HIGH",
	Highest: "HIGHEST",
}

// ParsePriority converts a priority name (case-insensitive) into a Priority.
func ParsePriority(name string) (Priority, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for p, n := range priorityNames {
		if n == normalized {
			return p, nil
		}
	}
	return UnknownPriority, errs.NewValueIsInvalidErrorWithCause(
		"priority", fmt.Errorf("%q is not a valid priority", name))
}

// Validate reports values outside the enumeration, including UnknownPriority.
func (p Priority) Validate() error {
	if p < Lowest || p > Highest {
		return errs.NewValueIsOutOfRangeError("priority", int(p), int(Lowest), int(Highest))
	}
	return nil
}

// String returns the priority name, or UNKNOWN.
func (p Priority) String() string {
	if n, ok := priorityNames[p]; ok {
		return n
	}
	return "UNKNOWN"
}
