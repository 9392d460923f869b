package compose

import (
	"errors"
	"fmt"
)

// Validation failures. A [ValidationError] wraps one of these.
var (
	// ErrMissingImageOrBuild indicates a service with neither image nor build.
	ErrMissingImageOrBuild = errors.New("has neither an image nor a build context specified")

	// ErrHostNetworkPorts indicates port mappings on a host-networked service.
	ErrHostNetworkPorts = errors.New("cannot have port mappings due to host network mode")

	// ErrConflictingParameters indicates an external resource that also
	// declares fields only meaningful for managed resources.
	ErrConflictingParameters = errors.New("conflicting parameters")
)

// ReadError reports a source that could not be read.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return e.Source + " not found"
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// SchemaError reports a document that does not decode into [Compose].
type SchemaError struct {
	Source string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s does not follow the specification: %v", e.Source, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ValidationError reports a semantic constraint violated by an entity of a
// document.
type ValidationError struct {
	Source string

	// Kind is "service", "network", "volume", "config" or "secret".
	Kind string
	Name string
	Err  error
}

func (e *ValidationError) Error() string {
	if errors.Is(e.Err, ErrConflictingParameters) {
		return fmt.Sprintf("%s: %v for %s %q", e.Source, e.Err, e.Kind, e.Name)
	}
	return fmt.Sprintf("%s: %s %q %v", e.Source, e.Kind, e.Name, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
