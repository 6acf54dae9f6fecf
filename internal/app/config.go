package app

import "errors"

// Operation names one of the two resolution entry points.
type Operation string

const (
	OpData       Operation = "data"
	OpParameters Operation = "parameters"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SnapshotPath string // hcl snapshot files
	ClassesPath  string // hcl class manifests + Go hooks

	Op        Operation
	ModelName string // restrict to one model instance; empty means all
	Component string
	Effects   string
	Flatten   bool
	Verbose   bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SnapshotPath == "" {
		return nil, errors.New("SnapshotPath is a required configuration field and cannot be empty")
	}
	switch cfg.Op {
	case OpData, OpParameters:
	default:
		return nil, errors.New("Op must be 'data' or 'parameters'")
	}
	return &cfg, nil
}
