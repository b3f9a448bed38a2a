package commands

import (
	"strings"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"
	"tms/internal/pkg/errs"
)

// Optional string inputs follow the same convention in every command: an empty
// (or blank) value means "no value".

func optionalBarcode(v string) (*kernel.Barcode, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	b, err := kernel.NewBarcode(v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func optionalLocationID(v string) (*kernel.LocationID, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	l, err := kernel.ParseLocationID(strings.TrimSpace(v))
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func optionalLocationGroupName(v string) (*kernel.LocationGroupName, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	g, err := kernel.NewLocationGroupName(v)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func priorityOrDefault(v string) (transportorder.Priority, error) {
	if strings.TrimSpace(v) == "" {
		return transportorder.DefaultPriority, nil
	}
	return transportorder.ParsePriority(v)
}

func validateExpectedVersion(expected *int64) error {
	if expected != nil && *expected < 0 {
		return errs.NewValueIsOutOfRangeError("expected version", *expected, 0, "unbounded")
	}
	return nil
}

// checkVersion compares the caller's view of the order with the loaded one.
func checkVersion(expected *int64, order *transportorder.TransportOrder) error {
	if expected == nil || *expected == order.Version() {
		return nil
	}
	return errs.NewVersionIsInvalidError("transport order", *expected, order.Version())
}
