// Package errs defines the error kinds shared by the build, render and write stages.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter marks configuration defects: unset sources, bad
	// dimensions, malformed gradients. Not worth retrying.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrIO marks output failures. Callers may retry with a different path.
	ErrIO = errors.New("i/o failure")
)

// Stage names the pipeline step an error surfaced in.
type Stage string

const (
	StageConfigure Stage = "configure"
	StageBuild     Stage = "build"
	StageRender    Stage = "render"
	StageWrite     Stage = "write"
)

// Error carries the stage and operation alongside the underlying cause.
type Error struct {
	Stage Stage
	Op    string
	Err   error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Invalid returns an ErrInvalidParameter error for the given stage.
func Invalid(stage Stage, format string, args ...any) error {
	return &Error{
		Stage: stage,
		Err:   fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...)),
	}
}

// IO wraps err as an ErrIO failure of op.
func IO(stage Stage, op string, err error) error {
	return &Error{
		Stage: stage,
		Op:    op,
		Err:   fmt.Errorf("%w: %w", ErrIO, err),
	}
}

// StageOf reports the stage recorded on err, if any.
func StageOf(err error) (Stage, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Stage, true
	}
	return "", false
}
