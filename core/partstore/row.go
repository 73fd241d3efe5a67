package partstore

import (
	"fmt"
	"strconv"

	"github.com/kilianp07/partminder/core/errs"
	"github.com/kilianp07/partminder/core/interval"
	"github.com/kilianp07/partminder/core/model"
	"github.com/kilianp07/partminder/core/validate"
)

// Header names the persisted fields in storage order.
var Header = []string{"name", "last_changed_date", "date_interval_months", "last_changed_mileage", "mileage_interval"}

// EncodeRow renders p as text fields in Header order.
func EncodeRow(p model.Part) []string {
	return []string{
		p.Name,
		interval.Format(p.LastChanged),
		strconv.Itoa(p.IntervalMonths),
		strconv.Itoa(p.LastMileage),
		strconv.Itoa(p.IntervalKm),
	}
}

// DecodeRow parses fields in Header order. The service date is not checked
// against today: a stored date naturally ages past the entry window.
func DecodeRow(fields []string) (model.Part, error) {
	if len(fields) != len(Header) {
		return model.Part{}, fmt.Errorf("expected %d fields, got %d: %w", len(Header), len(fields), errs.ErrValidation)
	}
	name, err := validate.Name(fields[0])
	if err != nil {
		return model.Part{}, err
	}
	if !validate.IsDateToken(fields[1]) {
		return model.Part{}, fmt.Errorf("date %q is not YYYY-MM-DD: %w", fields[1], errs.ErrValidation)
	}
	date, err := interval.ParseDate(fields[1])
	if err != nil {
		return model.Part{}, err
	}
	months, err := validate.IntervalMonths(fields[2])
	if err != nil {
		return model.Part{}, err
	}
	mileage, err := validate.NonNegInt(fields[3])
	if err != nil {
		return model.Part{}, err
	}
	km, err := validate.IntervalKm(fields[4])
	if err != nil {
		return model.Part{}, err
	}
	return model.Part{Name: name, LastChanged: date, IntervalMonths: months, LastMileage: mileage, IntervalKm: km}, nil
}

// IsHeader reports whether fields is the Header row.
func IsHeader(fields []string) bool {
	if len(fields) != len(Header) {
		return false
	}
	for i := range fields {
		if fields[i] != Header[i] {
			return false
		}
	}
	return true
}
