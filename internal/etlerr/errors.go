// Package etlerr defines the failure kinds a pipeline run can end with.
//
// Each kind is a sentinel error. Stage failures are returned as *StageError
// values that match both their kind and their underlying cause:
//
//	errors.Is(err, etlerr.ErrEmptyInput) // kind
//	errors.Is(err, os.ErrPermission)     // cause, when there is one
package etlerr

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput reports a source with zero usable bytes or rows.
	ErrEmptyInput = errors.New("empty input")

	// ErrExtractFailed reports any other failure to read or parse the source.
	ErrExtractFailed = errors.New("extract failed")

	// ErrLoadFailed reports a failure to write the destination table.
	ErrLoadFailed = errors.New("load failed")
)

// Stage names used in StageError and in metrics labels.
const (
	StageExtract   = "extract"
	StageTransform = "transform"
	StageLoad      = "load"
)

// StageError couples a failure kind with the stage that produced it and the
// underlying cause (which may be nil).
type StageError struct {
	Kind  error
	Stage string
	Err   error
}

// Error renders the user-facing message for the kind.
func (e *StageError) Error() string {
	switch e.Kind {
	case ErrEmptyInput:
		return "The file is empty. Unable to extract data."
	case ErrExtractFailed:
		return fmt.Sprintf("An error occurred while reading the file: %v", e.Err)
	case ErrLoadFailed:
		return fmt.Sprintf("Error loading data into the database: %v", e.Err)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Stage, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// EmptyInput returns an ErrEmptyInput failure for the extract stage.
func EmptyInput(cause error) error {
	return &StageError{Kind: ErrEmptyInput, Stage: StageExtract, Err: cause}
}

// ExtractFailed returns an ErrExtractFailed failure wrapping cause.
func ExtractFailed(cause error) error {
	return &StageError{Kind: ErrExtractFailed, Stage: StageExtract, Err: cause}
}

// LoadFailed returns an ErrLoadFailed failure wrapping cause.
func LoadFailed(cause error) error {
	return &StageError{Kind: ErrLoadFailed, Stage: StageLoad, Err: cause}
}

// IsInputError reports whether err is one of the user-recoverable input
// kinds (empty input or unreadable source).
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyInput) || errors.Is(err, ErrExtractFailed)
}
