package ingest

import (
	"fmt"
)

// ValidationKind classifies client-detected failures that never reach the
// network.
type ValidationKind string

const (
	ValidationUnsupportedType ValidationKind = "unsupported_type"
	ValidationTooLarge        ValidationKind = "too_large"
	ValidationBlankText       ValidationKind = "blank_text"
	ValidationInvalidURL      ValidationKind = "invalid_url"
	ValidationMissingName     ValidationKind = "missing_name"
)

// ValidationError is returned when a candidate or user input fails local
// validation. It blocks advancement but never marks a task failed.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RemoteError is implemented by transport-layer errors that carry the
// backend's structured error_type. The orchestrator surfaces the type
// verbatim when present.
type RemoteError interface {
	error
	ErrorType() string
}

// StageError records which stage a task failed in and the message shown to
// the user: the backend's error_type when supplied, else a generic
// per-stage fallback. For linkage failures Linked and Pending attribute
// which doc ids went through before the stage halted.
type StageError struct {
	Stage   Stage
	Type    string
	Message string
	Linked  []string
	Pending []string
}

func (e *StageError) Error() string {
	if e.Type != "" {
		return e.Type
	}
	return e.Message
}

// GenerationError reports a failed auto-description call. The task stays
// in NeedsImageMetadata so the user can fall back to manual entry.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("description generation failed: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }
