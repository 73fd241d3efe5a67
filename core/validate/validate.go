package validate

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/kilianp07/partminder/core/errs"
)

// MaxIntervalMonths is the longest date interval a part may declare.
const MaxIntervalMonths = 36

var (
	dateToken = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
	digits    = regexp.MustCompile(`^[0-9]+$`)
	letters   = regexp.MustCompile(`^[A-Za-z]+$`)
)

var (
	// ErrMileageAhead is returned when a recorded odometer value exceeds the
	// current mileage of the vehicle.
	ErrMileageAhead = errs.WithMessage(errs.ErrValidation,
		"The kilometers you provided are more than the total kilometers of the vehicle. Something is terribly wrong...")
)

// IsDateToken reports whether s is exactly YYYY-MM-DD. Month and day ranges
// are left to calendar construction.
func IsDateToken(s string) bool { return dateToken.MatchString(s) }

// IsNonNegInt reports whether s is one or more ASCII digits.
func IsNonNegInt(s string) bool { return digits.MatchString(s) }

// IsAlphaName reports whether s is one or more ASCII letters.
func IsAlphaName(s string) bool { return letters.MatchString(s) }

// NonNegInt converts s after checking it with IsNonNegInt.
func NonNegInt(s string) (int, error) {
	if !IsNonNegInt(s) {
		return 0, fmt.Errorf("%q is not a non-negative integer: %w", s, errs.ErrValidation)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q out of range: %w", s, errs.ErrValidation)
	}
	return n, nil
}

// IntervalMonths accepts a date interval in [1, MaxIntervalMonths].
func IntervalMonths(s string) (int, error) {
	n, err := NonNegInt(s)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > MaxIntervalMonths {
		return 0, fmt.Errorf("interval of %d months outside [1, %d]: %w", n, MaxIntervalMonths, errs.ErrValidation)
	}
	return n, nil
}

// IntervalKm accepts a strictly positive mileage interval.
func IntervalKm(s string) (int, error) {
	n, err := NonNegInt(s)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("mileage interval must be positive: %w", errs.ErrValidation)
	}
	return n, nil
}

// Mileage accepts an odometer reading that does not exceed current.
func Mileage(s string, current int) (int, error) {
	n, err := NonNegInt(s)
	if err != nil {
		return 0, err
	}
	if n > current {
		return 0, fmt.Errorf("mileage %d above current %d: %w", n, current, ErrMileageAhead)
	}
	return n, nil
}

// Name accepts an alphabetic part name.
func Name(s string) (string, error) {
	if !IsAlphaName(s) {
		return "", fmt.Errorf("%q is not an alphabetic name: %w", s, errs.ErrValidation)
	}
	return s, nil
}
