package detect

import (
	"fmt"
	"strings"
)

// ErrorKind represents the type of detection-related error
type ErrorKind string

const (
	// ErrKindNoFile indicates detection was triggered without a selected file
	ErrKindNoFile ErrorKind = "no_file"

	// ErrKindBusy indicates detection was triggered while a run is in flight
	ErrKindBusy ErrorKind = "busy"

	// ErrKindValidation indicates a selected file was rejected
	ErrKindValidation ErrorKind = "validation"

	// ErrKindDetection indicates the detector failed
	ErrKindDetection ErrorKind = "detection"
)

// User-facing messages
const (
	MsgNoFile          = "Please select a file first."
	MsgDetectionFailed = "An error occurred during detection. Please try again."
)

// Error is a detection error carrying a user-facing message
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("type=%s", e.Kind), e.Message}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors of the same kind
func (e *Error) Is(target error) bool {
	if de, ok := target.(*Error); ok {
		return e.Kind == de.Kind
	}
	return false
}

// Sentinel errors for errors.Is checks
var (
	ErrNoFile     = &Error{Kind: ErrKindNoFile, Message: MsgNoFile}
	ErrBusy       = &Error{Kind: ErrKindBusy, Message: "detection already running"}
	ErrValidation = &Error{Kind: ErrKindValidation, Message: "file rejected"}
	ErrDetection  = &Error{Kind: ErrKindDetection, Message: MsgDetectionFailed}
)

// NewValidationError creates a validation error with a user-facing message
func NewValidationError(message string) *Error {
	return &Error{Kind: ErrKindValidation, Message: message}
}

// NewDetectionError wraps a detector failure
func NewDetectionError(cause error) *Error {
	return &Error{Kind: ErrKindDetection, Message: MsgDetectionFailed, Cause: cause}
}
