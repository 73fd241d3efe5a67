package metrics

import "github.com/kilianp07/partminder/core/factory"

// Config lists the sinks an inspection is reported to.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
}
