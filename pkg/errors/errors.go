// Package errors provides structured error handling for the loader packages.
//
// Failures fall into a small taxonomy. Precondition violations (concentric
// circles handed to the connector solver, non-positive animation durations)
// are rejected immediately and never replaced by a default. Callers on the
// render path treat them as "draw this pair unfused for one frame" rather
// than propagating them.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPrecondition indicates a caller broke an input contract.
	KindPrecondition
	// KindConfig indicates an invalid configuration value or file.
	KindConfig
	// KindInit indicates an initialization error.
	KindInit
	// KindRender indicates a rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindConfig:
		return "config"
	case KindInit:
		return "init"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel causes. Match them with errors.Is through a LoaderError.
var (
	// ErrConcentric is returned when two circles share a center, which
	// leaves the connector direction undefined.
	ErrConcentric = stderrors.New("circles are concentric")
	// ErrNonPositiveDuration is returned for interpolations with a zero or
	// negative duration.
	ErrNonPositiveDuration = stderrors.New("duration must be positive")
	// ErrNegativeRepeatCount is returned for a counted repeat below zero.
	ErrNegativeRepeatCount = stderrors.New("repeat count must not be negative")
	// ErrNegativeDelay is returned for an interpolation with a start delay
	// below zero.
	ErrNegativeDelay = stderrors.New("delay must not be negative")
	// ErrEmptyRelay is returned when a relay has no indices to visit.
	ErrEmptyRelay = stderrors.New("relay has no steps")
	// ErrInvalidConfig is returned when a loader configuration cannot
	// produce a valid layout (for example a zero circle count).
	ErrInvalidConfig = stderrors.New("invalid loader config")
	// ErrUnknownLoader is returned when a loader name is not registered.
	ErrUnknownLoader = stderrors.New("unknown loader")
)

// LoaderError represents a structured error raised by the loader packages.
type LoaderError struct {
	// Op is the operation that failed (e.g., "metaball.Solve").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Loader is the loader variant name, if applicable.
	Loader string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *LoaderError) Error() string {
	if e.Loader != "" {
		return fmt.Sprintf("%s [%s] loader=%s: %v", e.Op, e.Kind, e.Loader, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *LoaderError) Unwrap() error {
	return e.Err
}

// Precondition wraps err as a KindPrecondition failure of op.
func Precondition(op string, err error) *LoaderError {
	return &LoaderError{Op: op, Kind: KindPrecondition, Err: err}
}

// IsPrecondition reports whether err carries KindPrecondition anywhere in
// its chain.
func IsPrecondition(err error) bool {
	var le *LoaderError
	if stderrors.As(err, &le) {
		return le.Kind == KindPrecondition
	}
	return false
}

// Is, As and New mirror the standard library so callers can keep a single
// errors import.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

func New(text string) error { return stderrors.New(text) }

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "cmd.renderFrame").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the loader packages.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *LoaderError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
