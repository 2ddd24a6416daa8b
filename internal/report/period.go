package report

import (
	"fmt"
	"time"

	ierr "smartbook/internal/errors"
)

// PeriodKind is the kind of reporting period submitted to the municipality
type PeriodKind string

const (
	PeriodMonthly   PeriodKind = "monthly"
	PeriodQuarterly PeriodKind = "quarterly"
	PeriodCustom    PeriodKind = "custom"
)

var monthNames = [...]string{
	"Gennaio", "Febbraio", "Marzo", "Aprile", "Maggio", "Giugno",
	"Luglio", "Agosto", "Settembre", "Ottobre", "Novembre", "Dicembre",
}

// Period is an inclusive range of check-in dates with its display label.
type Period struct {
	Kind  PeriodKind `json:"kind"`
	Label string     `json:"label"`
	From  time.Time  `json:"from"`
	To    time.Time  `json:"to"`
}

// MonthName returns the Italian name of m, or "" when out of range.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// QuarterMonths returns the Italian month names of quarter 1-4.
func QuarterMonths(quarter int) []string {
	if quarter < 1 || quarter > 4 {
		return nil
	}
	first := (quarter - 1) * 3
	return []string{monthNames[first], monthNames[first+1], monthNames[first+2]}
}

// MonthlyPeriod covers every check-in of the given month.
func MonthlyPeriod(year int, month time.Month) (Period, error) {
	if month < time.January || month > time.December {
		return Period{}, ierr.NewErrorf("invalid month %d", month).
			WithHint("Month must be between 1 and 12").
			Mark(ierr.ErrValidation)
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Kind:  PeriodMonthly,
		Label: fmt.Sprintf("%s %d", MonthName(month), year),
		From:  from,
		To:    from.AddDate(0, 1, -1),
	}, nil
}

// QuarterlyPeriod covers every check-in of quarter 1-4.
func QuarterlyPeriod(year, quarter int) (Period, error) {
	if quarter < 1 || quarter > 4 {
		return Period{}, ierr.NewErrorf("invalid quarter %d", quarter).
			WithHint("Quarter must be between 1 and 4").
			Mark(ierr.ErrValidation)
	}

	from := time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Kind:  PeriodQuarterly,
		Label: fmt.Sprintf("Q%d %d", quarter, year),
		From:  from,
		To:    from.AddDate(0, 3, -1),
	}, nil
}

// CustomPeriod covers an arbitrary inclusive range of check-in dates.
func CustomPeriod(from, to time.Time, label string) (Period, error) {
	if to.Before(from) {
		return Period{}, ierr.NewErrorf("period ends %s before it starts %s", to.Format(time.DateOnly), from.Format(time.DateOnly)).
			WithHint("Report end date must not be before its start date").
			Mark(ierr.ErrInvalidDateRange)
	}
	if label == "" {
		label = fmt.Sprintf("%s / %s", from.Format(time.DateOnly), to.Format(time.DateOnly))
	}
	return Period{Kind: PeriodCustom, Label: label, From: from, To: to}, nil
}
