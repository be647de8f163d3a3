package model

import "github.com/pkg/errors"

// ConfigError reports bad options or a cyclic analyzer dependency graph.
// It aborts the run (spec §7).
type ConfigError struct {
	cause error
}

func NewConfigError(msg string) error { return ConfigError{cause: errors.New(msg)} }
func WrapConfigError(cause error, msg string) error {
	return ConfigError{cause: errors.Wrap(cause, msg)}
}
func (e ConfigError) Error() string { return "config error: " + e.cause.Error() }
func (e ConfigError) Unwrap() error { return e.cause }

// IOError reports a filesystem read/list/stat failure. Recovered locally
// per spec §7: the offending file contributes no code nodes.
type IOError struct {
	Path  string
	cause error
}

func NewIOError(path string, cause error) error {
	return IOError{Path: path, cause: errors.Wrap(cause, "io error")}
}
func (e IOError) Error() string { return e.cause.Error() + ": " + e.Path }
func (e IOError) Unwrap() error { return e.cause }

// ParseError reports a parser collaborator failure on a file. Recovered
// locally, same as IOError.
type ParseError struct {
	Path  string
	cause error
}

func NewParseError(path string, cause error) error {
	return ParseError{Path: path, cause: errors.Wrap(cause, "parse error")}
}
func (e ParseError) Error() string { return e.cause.Error() + ": " + e.Path }
func (e ParseError) Unwrap() error { return e.cause }

// PatternError reports a candidate regex that failed to compile. Always
// recovered silently: the pattern is dropped.
type PatternError struct {
	Pattern string
	cause   error
}

func NewPatternError(pattern string, cause error) error {
	return PatternError{Pattern: pattern, cause: errors.Wrap(cause, "pattern error")}
}
func (e PatternError) Error() string { return e.cause.Error() + ": " + e.Pattern }
func (e PatternError) Unwrap() error { return e.cause }

// InvariantError reports a model-consistency check failure. Never
// swallowed: always surfaced, always aborts the run (spec §7/§8).
type InvariantError struct {
	cause error
}

func NewInvariantError(msg string) error { return InvariantError{cause: errors.New(msg)} }
func (e InvariantError) Error() string    { return "invariant violated: " + e.cause.Error() }
func (e InvariantError) Unwrap() error    { return e.cause }

// Cancelled reports an operator-initiated abort. Transitions the
// orchestrator to FINALIZATION; no model is returned.
type Cancelled struct{}

func (Cancelled) Error() string { return "cancelled" }
