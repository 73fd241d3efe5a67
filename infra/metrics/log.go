package metrics

import (
	"github.com/kilianp07/partminder/core/inspect"
	"github.com/kilianp07/partminder/core/logger"
)

// LogSink reports each inspection as one structured log line at info level.
type LogSink struct {
	log logger.Logger
}

// NewLogSink returns a sink writing to l.
func NewLogSink(l logger.Logger) *LogSink { return &LogSink{log: l} }

func (s *LogSink) RecordInspection(sum inspect.Summary) error {
	s.log.Infow("inspection", map[string]any{
		"parts":           sum.Parts,
		"overdue_date":    sum.OverdueDate,
		"overdue_mileage": sum.OverdueMileage,
		"mileage_km":      sum.Mileage,
	})
	return nil
}
