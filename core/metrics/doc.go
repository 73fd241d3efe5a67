// Package metrics defines where inspection results are reported. Sinks are
// registered by type name and built from configuration with NewSink; several
// configured sinks are combined into a MultiSink.
package metrics
