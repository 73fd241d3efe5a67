package interval

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/partminder/core/errs"
	"github.com/kilianp07/partminder/core/validate"
)

const (
	// DaysPerMonth approximates every month as 30 days. Interval arithmetic
	// is therefore not calendar-accurate: 12 months is 360 days.
	DaysPerMonth = 30
	// MaxAgeDays bounds how far in the past a service date may lie.
	MaxAgeDays = 547

	// DateLayout is the ISO-8601 calendar date layout used everywhere.
	DateLayout = "2006-01-02"

	day = 24 * time.Hour
)

// DateClass places a candidate service date relative to today.
type DateClass int

const (
	OK DateClass = iota
	Future
	TooOld
)

func (c DateClass) String() string {
	switch c {
	case OK:
		return "ok"
	case Future:
		return "future"
	case TooOld:
		return "too_old"
	default:
		return "unknown"
	}
}

var (
	// ErrDateFuture is returned by Date for a service date after today.
	ErrDateFuture = errs.WithMessage(errs.ErrValidation,
		"The date you provided lies ahead in the future.\nI cannot accept that, unless you are some kind of prophet, or unless you own a time machine.")
	// ErrDateTooOld is returned by Date for a service date older than MaxAgeDays.
	ErrDateTooOld = errs.WithMessage(errs.ErrValidation,
		"The date you provided seems too old. It just doesn't make sense...")
)

// ParseDate builds a UTC calendar date from a YYYY-MM-DD token. Components
// that do not form a real date (month 13, February 30) yield ErrInvalidDate.
func ParseDate(token string) (time.Time, error) {
	parts := strings.Split(token, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%q: %w", token, errs.ErrInvalidDate)
	}
	var ymd [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("%q: %w", token, errs.ErrInvalidDate)
		}
		ymd[i] = n
	}
	y, m, d := ymd[0], ymd[1], ymd[2]
	if y < 1 || m < 1 || m > 12 || d < 1 {
		return time.Time{}, fmt.Errorf("%q: %w", token, errs.ErrInvalidDate)
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalises overflow, so a changed day means it did not exist.
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, fmt.Errorf("%q: %w", token, errs.ErrInvalidDate)
	}
	return t, nil
}

// Today truncates a clock reading to its calendar day in UTC.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthsToDuration converts an interval in months to DaysPerMonth-day months.
func MonthsToDuration(months int) time.Duration {
	return time.Duration(months*DaysPerMonth) * day
}

// ClassifyDate reports whether candidate lies in the future, too far in the
// past, or within the accepted window relative to today.
func ClassifyDate(candidate, today time.Time) DateClass {
	if candidate.After(today) {
		return Future
	}
	if today.After(candidate) && today.Sub(candidate) > MaxAgeDays*day {
		return TooOld
	}
	return OK
}

// IsDateOverdue reports whether at least interval months (of DaysPerMonth
// days) have elapsed since last.
func IsDateOverdue(last, today time.Time, months int) bool {
	return today.Sub(last) >= MonthsToDuration(months)
}

// IsMileageOverdue reports whether the distance covered since the last
// service reaches the interval.
func IsMileageOverdue(current, last, interval int) bool {
	return current-last >= interval
}

// Date accepts a service date entered by the user: the token must be
// well formed, name a real date and classify as OK against today.
func Date(s string, today time.Time) (time.Time, error) {
	if !validate.IsDateToken(s) {
		return time.Time{}, fmt.Errorf("%q is not YYYY-MM-DD: %w", s, errs.ErrValidation)
	}
	d, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	switch ClassifyDate(d, today) {
	case Future:
		return time.Time{}, fmt.Errorf("%s: %w", s, ErrDateFuture)
	case TooOld:
		return time.Time{}, fmt.Errorf("%s: %w", s, ErrDateTooOld)
	}
	return d, nil
}

// Format renders d as YYYY-MM-DD.
func Format(d time.Time) string { return d.Format(DateLayout) }
