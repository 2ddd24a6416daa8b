package citytax

import (
	"time"

	ierr "smartbook/internal/errors"
)

// DateLayout is the wire format of civil dates
const DateLayout = "2006-01-02"

// DateOf truncates t to its calendar day at UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("invalid date %q, expected YYYY-MM-DD", value).
			Mark(ierr.ErrInvalidDateRange)
	}
	return t, nil
}

// Nights is the number of nights between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	return int((DateOf(checkOut).Unix() - DateOf(checkIn).Unix()) / secondsPerDay)
}

// AgeOn returns the age in completed calendar years on the reference date.
// A February 29 birthday is reached on March 1 in non-leap years.
func AgeOn(dateOfBirth, reference time.Time) int {
	birth, ref := DateOf(dateOfBirth), DateOf(reference)

	age := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() || (ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		age--
	}
	return age
}
