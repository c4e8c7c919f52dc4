package store

import "fmt"

// ReadError reports a cache record that could not be read or parsed.
type ReadError struct {
	Prefix string
	Path   string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read cache record %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a cache record that could not be written or removed.
// In-memory state stays authoritative when this is returned.
type WriteError struct {
	Prefix string
	Path   string
	Err    error
}

func (e *WriteError) Error() string {
	if e.Prefix == "" {
		return fmt.Sprintf("write cache %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("write cache record %q (%s): %v", e.Prefix, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
