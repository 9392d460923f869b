package interpolate

import (
	"errors"
	"fmt"
)

// ErrRequired matches every [RequiredError].
var ErrRequired = errors.New("required variable is missing a value")

// ParseError reports malformed interpolation syntax.
type ParseError struct {
	// Input is the string being parsed.
	Input string

	// Fragment is the offending part of Input.
	Fragment string

	Reason string
}

func newParseError(input, fragment, reason string) *ParseError {
	return &ParseError{Input: input, Fragment: fragment, Reason: reason}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid interpolation format for %q: %s", e.Fragment, e.Reason)
}

// RequiredError is returned when a ${NAME?message} reference is not
// satisfied.
type RequiredError struct {
	Name string

	// Message is the evaluated message text, possibly empty.
	Message string
}

func (e *RequiredError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("Required variable %q is missing a value", e.Name)
	}
	return fmt.Sprintf("Required variable %q is missing a value: %s", e.Name, e.Message)
}

// Is reports whether target is [ErrRequired].
func (e *RequiredError) Is(target error) bool {
	return target == ErrRequired
}

// PathError attributes an interpolation failure to a field of a document.
type PathError struct {
	// Path is the dotted field path, e.g. "services.web.image".
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}
