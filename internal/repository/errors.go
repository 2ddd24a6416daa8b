package repository

import (
	ierr "smartbook/internal/errors"

	"gorm.io/gorm"
)

// translate maps gorm failures onto the application error sentinels.
func translate(err error, entity string, details map[string]any) error {
	if err == nil {
		return nil
	}

	switch {
	case ierr.Is(err, gorm.ErrRecordNotFound):
		return ierr.WithError(err).
			WithHintf("%s not found", entity).
			WithReportableDetails(details).
			Mark(ierr.ErrNotFound)
	case ierr.Is(err, gorm.ErrDuplicatedKey):
		return ierr.WithError(err).
			WithHintf("%s already exists", entity).
			WithReportableDetails(details).
			Mark(ierr.ErrAlreadyExists)
	default:
		return ierr.WithError(err).
			WithHintf("Failed to access %s", entity).
			WithReportableDetails(details).
			Mark(ierr.ErrDatabase)
	}
}
