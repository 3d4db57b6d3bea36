package engine

import "fmt"

// ConfigurationError reports a misconfigured aggregation request: an issue
// depth outside the configured hierarchy or a missing required column name.
// The call is aborted; the caller must fix the configuration and retry,
// nothing is retried internally.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string { return e.msg }

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}
