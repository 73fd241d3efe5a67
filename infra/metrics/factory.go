package metrics

import (
	"github.com/kilianp07/partminder/core/factory"
	"github.com/kilianp07/partminder/core/logger"
	coremetrics "github.com/kilianp07/partminder/core/metrics"
)

// init registers built-in inspection sinks.
func init() {
	_ = coremetrics.RegisterSink("textfile", func(conf map[string]any, _ logger.Logger) (coremetrics.InspectionSink, error) {
		var c struct {
			Path string `json:"path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewTextfileSink(c.Path)
	})

	_ = coremetrics.RegisterSink("log", func(_ map[string]any, log logger.Logger) (coremetrics.InspectionSink, error) {
		return NewLogSink(log), nil
	})
}
