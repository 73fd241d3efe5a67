package metrics

import (
	"github.com/kilianp07/partminder/core/factory"
	"github.com/kilianp07/partminder/core/logger"
)

// SinkFactory builds a sink from its raw settings. log is the session
// logger, configured from the logging section.
type SinkFactory func(conf map[string]any, log logger.Logger) (InspectionSink, error)

type sinkBuilder func(log logger.Logger) (InspectionSink, error)

var sinkRegistry = factory.NewRegistry[sinkBuilder]()

// RegisterSink adds an inspection sink factory identified by name.
func RegisterSink(name string, f SinkFactory) error {
	if f == nil {
		return sinkRegistry.Register(name, nil)
	}
	return sinkRegistry.Register(name, func(conf map[string]any) (sinkBuilder, error) {
		return func(log logger.Logger) (InspectionSink, error) { return f(conf, log) }, nil
	})
}

// NewSink creates the sink described by cfgs. No configuration yields a
// NopSink and several yield a MultiSink. A nil log discards sink output.
func NewSink(cfgs []factory.ModuleConfig, log logger.Logger) (InspectionSink, error) {
	if log == nil {
		log = logger.Nop{}
	}
	sinks := make([]InspectionSink, 0, len(cfgs))
	for _, c := range cfgs {
		build, err := sinkRegistry.Create(c)
		if err != nil {
			return nil, err
		}
		s, err := build(log)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	switch len(sinks) {
	case 0:
		return NopSink{}, nil
	case 1:
		return sinks[0], nil
	}
	return NewMultiSink(sinks...), nil
}

func init() {
	_ = RegisterSink("nop", func(map[string]any, logger.Logger) (InspectionSink, error) {
		return NopSink{}, nil
	})
}
