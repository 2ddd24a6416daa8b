package citytax

import (
	"testing"
	"time"

	ierr "smartbook/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeOn(t *testing.T) {
	tests := []struct {
		name      string
		birth     string
		reference string
		want      int
	}{
		{"day before birthday", "2011-01-20", "2025-01-15", 13},
		{"on birthday", "2011-01-15", "2025-01-15", 14},
		{"day after birthday", "2011-01-14", "2025-01-15", 14},
		{"earlier month", "1995-03-10", "2025-01-15", 29},
		{"leap day in non-leap year before march", "2012-02-29", "2025-02-28", 12},
		{"leap day in non-leap year on march 1", "2012-02-29", "2025-03-01", 13},
		{"leap day in leap year", "2012-02-29", "2024-02-29", 12},
		{"born on reference date", "2025-01-15", "2025-01-15", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeOn(date(tt.birth), date(tt.reference)))
		})
	}
}

func TestAgeOnIgnoresTimeOfDay(t *testing.T) {
	birth := time.Date(2011, 1, 15, 23, 59, 0, 0, time.UTC)
	ref := time.Date(2025, 1, 15, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 14, AgeOn(birth, ref))
}

func TestNights(t *testing.T) {
	assert.Equal(t, 2, Nights(date("2025-01-15"), date("2025-01-17")))
	assert.Equal(t, 0, Nights(date("2025-01-15"), date("2025-01-15")))
	assert.Equal(t, -1, Nights(date("2025-01-15"), date("2025-01-14")))
	assert.Equal(t, 2, Nights(date("2024-02-28"), date("2024-03-01")))
	assert.Equal(t, 136965, Nights(date("2025-01-01"), date("2400-01-01")))

	// a late check-in still counts as the same calendar night
	checkIn := time.Date(2025, 1, 15, 22, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 1, 17, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, Nights(checkIn, checkOut))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-31")
	require.NoError(t, err)
	assert.Equal(t, date("2025-03-31"), d)

	_, err = ParseDate("31/03/2025")
	require.Error(t, err)
	assert.True(t, ierr.Is(err, ierr.ErrInvalidDateRange))
}
