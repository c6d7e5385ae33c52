package sink

import "fmt"

// OpenError reports a failure to create or open a sink's target file.
// It is returned from sink constructors and is unrecoverable for that sink.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open file %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// WriteError reports a hard failure from the underlying OS write call,
// as opposed to a short write, which is retried. The sink remains usable
// for subsequent writes if the caller chooses to continue.
type WriteError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write to file %q at offset %d: %v", e.Path, e.Offset, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
