package seqconv

import (
	"errors"
	"fmt"
)

// Error type constants for classification and matching
const (
	// ErrorTypeTypeMismatch means the source was a text value where a generic
	// sequence was required.
	ErrorTypeTypeMismatch = "type_mismatch"

	// ErrorTypeCapabilityMismatch means the source does not implement the
	// sequence protocol at all.
	ErrorTypeCapabilityMismatch = "capability_mismatch"

	// ErrorTypeIterationFailed means the host runtime failed while the
	// sequence was being traversed.
	ErrorTypeIterationFailed = "iteration_failed"

	// ErrorTypeElementFailed means a single element could not be converted.
	ErrorTypeElementFailed = "element_conversion_failed"
)

// SequenceCapability is the capability name reported by capability
// mismatches.
const SequenceCapability = "Sequence"

// ConversionError represents a classified conversion failure. It supports
// Go's error wrapping patterns with Unwrap().
type ConversionError struct {
	Type  string `json:"type"`
	Cause string `json:"cause"`

	// Index is the position of the offending element, or -1.
	Index int `json:"index"`

	// Expected and Actual name the required capability and the type that
	// was found, for capability mismatches.
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`

	Wrapped error `json:"-"`
}

// Error implements the error interface
func (e *ConversionError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: item %d: %s", e.Type, e.Index, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Cause)
}

// Unwrap implements the error unwrapping interface for Go's errors.Is and errors.As
func (e *ConversionError) Unwrap() error {
	return e.Wrapped
}

// NewConversionError creates a non-positional ConversionError.
func NewConversionError(errorType, cause string) *ConversionError {
	return &ConversionError{
		Type:  errorType,
		Cause: cause,
		Index: -1,
	}
}

func textMismatch() *ConversionError {
	return NewConversionError(ErrorTypeTypeMismatch,
		"cannot treat a text value as a generic element sequence")
}

func capabilityMismatch(actual string) *ConversionError {
	return &ConversionError{
		Type:     ErrorTypeCapabilityMismatch,
		Cause:    fmt.Sprintf("'%s' object cannot be converted to '%s'", actual, SequenceCapability),
		Index:    -1,
		Expected: SequenceCapability,
		Actual:   actual,
	}
}

func iterationFailed(index int, err error) *ConversionError {
	return &ConversionError{
		Type:    ErrorTypeIterationFailed,
		Cause:   err.Error(),
		Index:   index,
		Wrapped: err,
	}
}

func elementFailed(index int, err error) *ConversionError {
	return &ConversionError{
		Type:    ErrorTypeElementFailed,
		Cause:   err.Error(),
		Index:   index,
		Wrapped: err,
	}
}

// ClassifyError returns the outermost ConversionError in err's chain, or
// nil if err did not come from a conversion.
func ClassifyError(err error) *ConversionError {
	var convErr *ConversionError
	if errors.As(err, &convErr) {
		return convErr
	}
	return nil
}

// MatchesErrorType checks if an error is a conversion error of the given type
func MatchesErrorType(err error, errorType string) bool {
	convErr := ClassifyError(err)
	return convErr != nil && convErr.Type == errorType
}

// IsShapeError reports whether err means the input had the wrong shape:
// a text value or something that is not a sequence.
func IsShapeError(err error) bool {
	return MatchesErrorType(err, ErrorTypeTypeMismatch) ||
		MatchesErrorType(err, ErrorTypeCapabilityMismatch)
}

// IsTraversalError reports whether err happened while walking a sequence
// that had the right shape.
func IsTraversalError(err error) bool {
	return MatchesErrorType(err, ErrorTypeIterationFailed) ||
		MatchesErrorType(err, ErrorTypeElementFailed)
}
