package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
var New = errors.New

// Is reports whether any error in err's tree matches target.
var Is = errors.Is

// As finds the first error in err's tree that matches target.
var As = errors.As

// known errors
var (
	ErrMalformedContext = errors.New("malformed_context")
	ErrMissingContext   = errors.New("missing_context")
	ErrFixtureNotFound  = errors.New("fixture_not_found")
	ErrStylesNotReady   = errors.New("styles_not_ready")
	ErrInvalidRequest   = errors.New("invalid_request")
	ErrServerError      = errors.New("server_error")
)

// MissingField reports a context field a renderer needed but did not get
func MissingField(field string) error {
	return fmt.Errorf("%w: %s is required", ErrMalformedContext, field)
}
