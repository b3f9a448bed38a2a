package kernel

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"tms/internal/pkg/errs"
	"tms/internal/pkg/guard"
)

// BarcodeMaxLength is the longest barcode a transport unit label may carry.
const BarcodeMaxLength = 20

// ErrBarcodeIsNotConstructed is returned when validating a zero-value Barcode.
var ErrBarcodeIsNotConstructed = errs.NewValueIsRequiredError("barcode must be created via NewBarcode")

// Barcode identifies the transport unit (pallet, bin, container) that a
// transport order moves.
type Barcode struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewBarcode validates and wraps a transport unit barcode. Surrounding
// whitespace is trimmed; inner whitespace is rejected.
func NewBarcode(value string) (Barcode, error) {
	b := Barcode{guard: guard.NewConstructorGuard()}
	if err := b.setValue(value); err != nil {
		return Barcode{}, err
	}
	return b, nil
}

// Validate reports a barcode that was not built by NewBarcode.
func (b Barcode) Validate() error {
	return b.guard.Validate(ErrBarcodeIsNotConstructed)
}

// String returns the normalized barcode value.
func (b Barcode) String() string {
	return b.value
}

// IsEqual compares two barcodes by value.
func (b Barcode) IsEqual(other Barcode) bool {
	return b.value == other.value
}

func (b *Barcode) setValue(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError("barcode")
	}
	if n := utf8.RuneCountInString(value); n > BarcodeMaxLength {
		return errs.NewValueIsOutOfRangeError("barcode length", n, 1, BarcodeMaxLength)
	}
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return errs.NewValueIsInvalidErrorWithCause("barcode", fmt.Errorf("%q contains whitespace", value))
	}
	b.value = value
	return nil
}
