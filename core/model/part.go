package model

import (
	"fmt"
	"time"

	"github.com/kilianp07/partminder/core/errs"
	"github.com/kilianp07/partminder/core/interval"
	"github.com/kilianp07/partminder/core/validate"
)

// Part is one tracked spare part and the most recent service event for it.
type Part struct {
	Name           string    `json:"name"`
	LastChanged    time.Time `json:"last_changed"`    // calendar date, UTC midnight
	IntervalMonths int       `json:"interval_months"` // 1..36
	LastMileage    int       `json:"last_mileage"`    // odometer at last service, km
	IntervalKm     int       `json:"interval_km"`     // km allowed between services
}

// Validate checks the part against the record invariants for a vehicle at
// the given state on the given day.
func (p Part) Validate(v VehicleState, today time.Time) error {
	if !validate.IsAlphaName(p.Name) {
		return fmt.Errorf("name %q: %w", p.Name, errs.ErrValidation)
	}
	if p.IntervalMonths < 1 || p.IntervalMonths > validate.MaxIntervalMonths {
		return fmt.Errorf("%s: interval of %d months outside [1, %d]: %w",
			p.Name, p.IntervalMonths, validate.MaxIntervalMonths, errs.ErrValidation)
	}
	if p.IntervalKm <= 0 {
		return fmt.Errorf("%s: mileage interval must be positive: %w", p.Name, errs.ErrValidation)
	}
	if p.LastMileage < 0 {
		return fmt.Errorf("%s: negative mileage: %w", p.Name, errs.ErrValidation)
	}
	if p.LastMileage > v.CurrentMileage {
		return fmt.Errorf("%s: mileage %d above current %d: %w",
			p.Name, p.LastMileage, v.CurrentMileage, validate.ErrMileageAhead)
	}
	switch interval.ClassifyDate(p.LastChanged, today) {
	case interval.Future:
		return fmt.Errorf("%s: %w", p.Name, interval.ErrDateFuture)
	case interval.TooOld:
		return fmt.Errorf("%s: %w", p.Name, interval.ErrDateTooOld)
	}
	return nil
}

// DateOverdue reports whether the date interval has elapsed by today.
func (p Part) DateOverdue(today time.Time) bool {
	return interval.IsDateOverdue(p.LastChanged, today, p.IntervalMonths)
}

// MileageOverdue reports whether the mileage interval has been covered.
func (p Part) MileageOverdue(v VehicleState) bool {
	return interval.IsMileageOverdue(v.CurrentMileage, p.LastMileage, p.IntervalKm)
}

// Serviced returns a copy of p with a new service event. Intervals are kept.
func (p Part) Serviced(date time.Time, mileage int) Part {
	p.LastChanged = date
	p.LastMileage = mileage
	return p
}
