package model

import (
	"fmt"

	"github.com/kilianp07/partminder/core/errs"
)

// VehicleState is the per-session view of the vehicle. It is supplied once
// when a session starts and is never persisted.
type VehicleState struct {
	CurrentMileage int // odometer reading in km
}

// Validate checks that the vehicle state is sound.
func (v VehicleState) Validate() error {
	if v.CurrentMileage < 0 {
		return fmt.Errorf("current mileage %d is negative: %w", v.CurrentMileage, errs.ErrValidation)
	}
	return nil
}
