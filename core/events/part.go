package events

import (
	"time"

	"github.com/kilianp07/partminder/core/model"
)

// Op names the change applied to a part.
type Op string

const (
	OpUpdate Op = "update"
	OpInsert Op = "insert"
)

// PartChanged is published once the change is durable.
type PartChanged struct {
	Op   Op
	Part model.Part
	At   time.Time
}

// Fields renders the event for structured logging.
func (e PartChanged) Fields() map[string]any {
	return map[string]any{
		"op":                   string(e.Op),
		"part":                 e.Part.Name,
		"last_changed_date":    e.Part.LastChanged.Format("2006-01-02"),
		"last_changed_mileage": e.Part.LastMileage,
	}
}
