package metrics

import "github.com/kilianp07/partminder/core/inspect"

// InspectionSink records the outcome of an inspection.
type InspectionSink interface {
	RecordInspection(s inspect.Summary) error
}

// NopSink discards every record.
type NopSink struct{}

func (NopSink) RecordInspection(inspect.Summary) error { return nil }

// MultiSink forwards each record to several sinks.
type MultiSink struct {
	Sinks []InspectionSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...InspectionSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordInspection forwards to all sinks and returns the first error. Every
// sink is attempted even when an earlier one fails.
func (m *MultiSink) RecordInspection(s inspect.Summary) error {
	var first error
	for _, sink := range m.Sinks {
		if err := sink.RecordInspection(s); err != nil && first == nil {
			first = err
		}
	}
	return first
}
