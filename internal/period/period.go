// Package period implements the 3-year rolling expiration rules for
// reserved car numbers. A reservation expires on January 1 three years
// after its base year: the last year the number was used, or the year it
// was reserved if it has never been used.
package period

import (
	"errors"
	"time"

	"github.com/raceworks/car-number-registry/internal/models"
)

// ErrMissingYear reports that neither a reserved year nor a usage year was
// supplied. Registrations always carry a reserved year, so hitting this is
// an internal invariant violation, not a user error.
var ErrMissingYear = errors.New("period: no reserved year or usage year")

const extensionYears = 3

// Compute returns the expiration date for a registration reserved in
// reservedYear whose most recent usage year is lastUsageYear (nil if the
// number has never been used). The result is always January 1, UTC.
func Compute(reservedYear int, lastUsageYear *int) (time.Time, error) {
	base := reservedYear
	if lastUsageYear != nil {
		base = *lastUsageYear
	}
	if base == 0 {
		return time.Time{}, ErrMissingYear
	}
	return time.Date(base+extensionYears, time.January, 1, 0, 0, 0, 0, time.UTC), nil
}

// ActiveInPeriod reports whether a registration counts as active: its
// status must be Active and the date of now must not be past expiration.
func ActiveInPeriod(expiration time.Time, status models.Status, now time.Time) bool {
	if status != models.StatusActive {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !today.After(expiration)
}
