package recon

import "fmt"

// InvalidInputError reports a record missing a required field. The engine
// rejects the whole invocation rather than skipping the record, so every
// input ends up in exactly one output bucket or the call fails entirely.
type InvalidInputError struct {
	Side  Side
	Index int
	Field string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: side %s record %d has missing or invalid %s", e.Side, e.Index, e.Field)
}

// ConfigError reports an engine configuration value outside its legal
// range, e.g. a threshold outside [0,1] or a negative window.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}
