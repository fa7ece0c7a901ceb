package errors

import "fmt"

// ResourceError is a failed filesystem or process operation of a diagnostic command.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

// Error is an implementation of the error interface.
func (e *ResourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// EngineUnavailableError indicates that no build engine is configured or reachable.
type EngineUnavailableError struct {
	Reason string
}

// Error is an implementation of the error interface.
func (e *EngineUnavailableError) Error() string {
	return fmt.Sprintf("build engine unavailable: %s", e.Reason)
}
