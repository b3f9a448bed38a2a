package kernel

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"tms/internal/pkg/errs"
	"tms/internal/pkg/guard"
)

const (
	// LocationIDSeparator separates the segments of a LocationID.
	LocationIDSeparator = "/"
	// LocationIDSegmentMaxLength is the maximum length of each segment.
	LocationIDSegmentMaxLength = 4

	locationIDSegments = 5
)

// ErrLocationIDIsNotConstructed is returned when validating a zero-value LocationID.
var ErrLocationIDIsNotConstructed = errs.NewValueIsRequiredError(
	"location id must be created via NewLocationID or ParseLocationID")

// LocationID addresses a single warehouse location by area, aisle and the
// x/y/z coordinates inside the aisle, written as "AREA/AISLE/X/Y/Z".
//
// Example:
//
//	loc, err := kernel.ParseLocationID("EXT_/0000/0000/0000/0000")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(loc.Area()) // EXT_
type LocationID struct { //nolint:recvcheck //using for validation
	area  string
	aisle string
	x     string
	y     string
	z     string
	guard guard.ConstructorGuard
}

// NewLocationID builds a LocationID from its segments. Every segment must be
// non-empty, at most LocationIDSegmentMaxLength characters and must not contain
// the separator.
func NewLocationID(area, aisle, x, y, z string) (LocationID, error) {
	loc := LocationID{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		setSegment(&loc.area, "area", area),
		setSegment(&loc.aisle, "aisle", aisle),
		setSegment(&loc.x, "x", x),
		setSegment(&loc.y, "y", y),
		setSegment(&loc.z, "z", z),
	); err != nil {
		return LocationID{}, err
	}

	return loc, nil
}

// ParseLocationID parses the "AREA/AISLE/X/Y/Z" form produced by String.
func ParseLocationID(s string) (LocationID, error) {
	parts := strings.Split(strings.TrimSpace(s), LocationIDSeparator)
	if len(parts) != locationIDSegments {
		return LocationID{}, errs.NewValueIsInvalidErrorWithCause(
			"location id",
			fmt.Errorf("%q must have %d segments separated by %q", s, locationIDSegments, LocationIDSeparator),
		)
	}
	return NewLocationID(parts[0], parts[1], parts[2], parts[3], parts[4])
}

// Validate reports a location that was not built by NewLocationID or ParseLocationID.
func (l LocationID) Validate() error {
	return l.guard.Validate(ErrLocationIDIsNotConstructed)
}

// Area is the warehouse area, e.g. HRL.
func (l LocationID) Area() string { return l.area }

// Aisle is the aisle within the area.
func (l LocationID) Aisle() string { return l.aisle }

// X is the horizontal coordinate.
func (l LocationID) X() string { return l.x }

// Y is the vertical coordinate.
func (l LocationID) Y() string { return l.y }

// Z is the depth coordinate.
func (l LocationID) Z() string { return l.z }

// String joins the coordinates with slashes, e.g. HRL/0001/0002/0003/0004.
func (l LocationID) String() string {
	return strings.Join([]string{l.area, l.aisle, l.x, l.y, l.z}, LocationIDSeparator)
}

// IsEqual compares all five coordinates.
func (l LocationID) IsEqual(other LocationID) bool {
	return l.String() == other.String()
}

func setSegment(dst *string, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError("location id " + name)
	}
	if strings.Contains(value, LocationIDSeparator) {
		return errs.NewValueIsInvalidErrorWithCause(
			"location id "+name,
			fmt.Errorf("%q contains %q", value, LocationIDSeparator),
		)
	}
	if n := utf8.RuneCountInString(value); n > LocationIDSegmentMaxLength {
		return errs.NewValueIsOutOfRangeError("location id "+name+" length", n, 1, LocationIDSegmentMaxLength)
	}
	*dst = value
	return nil
}
