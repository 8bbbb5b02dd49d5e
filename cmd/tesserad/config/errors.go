package config

import "fmt"

// UsageError reports a command-line flag whose value failed validation. The
// daemon exits without starting any subsystem when one is returned.
type UsageError struct {
	Flag string
	Err  error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("invalid --%s: %v", e.Flag, e.Err)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageError(flag string, err error) *UsageError {
	return &UsageError{Flag: flag, Err: err}
}
