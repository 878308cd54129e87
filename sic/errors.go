package sic

import (
	"errors"
	"fmt"
)

// Error types raised during catalog construction. All three abort the
// build; no partial hierarchy is ever returned alongside one of these.

// FormatError reports a malformed code string or an inconsistent
// section/code/level combination in a source row. It indicates a defect
// in the source data or the calling code, never a retryable condition.
type FormatError struct {
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid code %q: %s", e.Value, e.Reason)
}

// LookupError reports a derived key that is absent from a build index,
// such as a parent code with no corresponding node. It signals an
// incomplete or inconsistent source hierarchy.
type LookupError struct {
	Stage string
	Key   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: no node for key %q", e.Stage, e.Key)
}

// ConsistencyError reports a cardinality mismatch between two sources
// that must describe the same code set, such as a metadata dictionary
// from a different classification release than the structure rows.
type ConsistencyError struct {
	Records int
	Nodes   int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("metadata source has %d records for %d nodes", e.Records, e.Nodes)
}

// IsFormatError returns true if the error chain contains a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsLookupError returns true if the error chain contains a LookupError.
func IsLookupError(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}

// IsConsistencyError returns true if the error chain contains a ConsistencyError.
func IsConsistencyError(err error) bool {
	var ce *ConsistencyError
	return errors.As(err, &ce)
}
