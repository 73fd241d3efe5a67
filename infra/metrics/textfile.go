package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/partminder/core/inspect"
)

// TextfileSink writes inspection gauges in the Prometheus text format to a
// file picked up by the node exporter textfile collector.
type TextfileSink struct {
	path    string
	reg     *prometheus.Registry
	parts   prometheus.Gauge
	overdue *prometheus.GaugeVec
	mileage prometheus.Gauge
	last    prometheus.Gauge
}

// NewTextfileSink registers the inspection gauges on a private registry.
func NewTextfileSink(path string) (*TextfileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("textfile sink: path is required")
	}
	reg := prometheus.NewRegistry()
	s := &TextfileSink{
		path: path,
		reg:  reg,
		parts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "partminder_parts_total",
			Help: "Number of tracked spare parts",
		}),
		overdue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "partminder_overdue_parts",
			Help: "Number of parts overdue for service per dimension",
		}, []string{"dimension"}),
		mileage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "partminder_vehicle_mileage_km",
			Help: "Odometer reading supplied for the last inspection",
		}),
		last: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "partminder_last_inspection_timestamp_seconds",
			Help: "Unix time of the last inspection",
		}),
	}
	for _, c := range []prometheus.Collector{s.parts, s.overdue, s.mileage, s.last} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// RecordInspection updates the gauges and rewrites the textfile.
func (s *TextfileSink) RecordInspection(sum inspect.Summary) error {
	s.parts.Set(float64(sum.Parts))
	s.overdue.WithLabelValues(inspect.ByDate.String()).Set(float64(sum.OverdueDate))
	s.overdue.WithLabelValues(inspect.ByMileage.String()).Set(float64(sum.OverdueMileage))
	s.mileage.Set(float64(sum.Mileage))
	s.last.Set(float64(sum.At.Unix()))
	if err := prometheus.WriteToTextfile(s.path, s.reg); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
