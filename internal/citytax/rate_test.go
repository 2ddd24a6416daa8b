package citytax

import (
	"testing"

	ierr "smartbook/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRate(t *testing.T) {
	testCases := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "two_decimals", value: "2.50", want: "2.5"},
		{name: "integer", value: "3", want: "3"},
		{name: "trailing_zeros", value: "1.2500", want: "1.25"},
		{name: "three_decimals", value: "1.255", wantErr: true},
		{name: "not_a_number", value: "two", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rate, err := ParseRate(tc.value)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.Is(err, ierr.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, rate.String())
		})
	}
}
