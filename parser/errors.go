package parser

import "fmt"

// ExtractionError reports a failed text extraction. It always carries the
// reason shown to the uploader and, when one exists, the underlying cause.
type ExtractionError struct {
	Filename string
	Reason   string
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed for %s: %s: %v", e.Filename, e.Reason, e.Cause)
	}
	return fmt.Sprintf("extraction failed for %s: %s", e.Filename, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

func newExtractionError(filename, reason string, cause error) *ExtractionError {
	return &ExtractionError{Filename: filename, Reason: reason, Cause: cause}
}
