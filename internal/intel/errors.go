package intel

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is matched by every CredentialError.
var ErrMissingCredential = errors.New("model credential is not configured")

// CredentialError reports that the selected provider has no API key. It is
// raised before any network I/O.
type CredentialError struct {
	EnvVar string
}

func (e *CredentialError) Error() string {
	return e.EnvVar + " is not configured."
}

// Is makes errors.Is(err, ErrMissingCredential) true.
func (e *CredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// ParseMessage is the user-facing text of every ParseError.
const ParseMessage = "Failed to parse JSON from model response."

// ParseError is returned when the model answered but its output is not a
// usable enrichment payload. Cause is kept for logs.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return ParseMessage
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ModelError wraps a failed model call (network, provider error, timeout).
type ModelError struct {
	Model string
	Cause error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s request failed: %v", e.Model, e.Cause)
}

func (e *ModelError) Unwrap() error {
	return e.Cause
}
