package kernel

import (
	"strings"
	"unicode/utf8"

	"tms/internal/pkg/errs"
	"tms/internal/pkg/guard"
)

// LocationGroupNameMaxLength bounds the name of a location group.
const LocationGroupNameMaxLength = 255

// ErrLocationGroupNameIsNotConstructed is returned for a zero LocationGroupName.
var ErrLocationGroupNameIsNotConstructed = errs.NewValueIsRequiredError(
	"location group name must be created via NewLocationGroupName")

// LocationGroupName references a group of locations, e.g. a high-bay
// warehouse or a picking zone. A transport order can target a group instead
// of a concrete location and let the mover pick the final slot.
type LocationGroupName struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewLocationGroupName trims value and rejects blank names.
func NewLocationGroupName(value string) (LocationGroupName, error) {
	g := LocationGroupName{guard: guard.NewConstructorGuard()}
	if err := g.setValue(value); err != nil {
		return LocationGroupName{}, err
	}
	return g, nil
}

// Validate reports a group name that was not built by NewLocationGroupName.
func (g LocationGroupName) Validate() error {
	return g.guard.Validate(ErrLocationGroupNameIsNotConstructed)
}

// String returns the group name.
func (g LocationGroupName) String() string {
	return g.value
}

// IsEqual compares two group names by value.
func (g LocationGroupName) IsEqual(other LocationGroupName) bool {
	return g.value == other.value
}

func (g *LocationGroupName) setValue(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError("location group name")
	}
	if n := utf8.RuneCountInString(value); n > LocationGroupNameMaxLength {
		return errs.NewValueIsOutOfRangeError("location group name length", n, 1, LocationGroupNameMaxLength)
	}
	g.value = value
	return nil
}
