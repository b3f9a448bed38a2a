package kernel_test

import (
	"strings"
	"testing"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBarcode(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain", input: "00000000000000004711", want: "00000000000000004711"},
		{name: "trimmed", input: "  PAL-1 ", want: "PAL-1"},
		{name: "empty", input: "   ", wantErr: errs.ErrValueIsRequired},
		{name: "inner whitespace", input: "PAL 1", wantErr: errs.ErrValueIsInvalid},
		{name: "too long", input: strings.Repeat("9", kernel.BarcodeMaxLength+1), wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := kernel.NewBarcode(tc.input)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, b.Validate())
			assert.Equal(t, tc.want, b.String())
		})
	}
}

func TestBarcode_IsEqual(t *testing.T) {
	a, _ := kernel.NewBarcode("TU-1")
	b, _ := kernel.NewBarcode(" TU-1")
	c, _ := kernel.NewBarcode("TU-2")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestBarcode_ZeroValueIsInvalid(t *testing.T) {
	var b kernel.Barcode

	require.ErrorIs(t, b.Validate(), kernel.ErrBarcodeIsNotConstructed)
}
