package sqlast

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for translation failures.
var (
	// ErrUnsupported is returned when a statement requires a SQL construct
	// the target dialect can neither render natively nor emulate without
	// changing result-set semantics.
	ErrUnsupported = errors.New("sqlast: unsupported construct")

	// ErrInvalidAST is returned when the input tree violates a structural
	// invariant. It indicates a bug in the upstream statement builder.
	ErrInvalidAST = errors.New("sqlast: invalid statement tree")
)

// UnsupportedConstructError reports a SQL construct that has no rendering
// and no semantics-preserving emulation on the target dialect.
type UnsupportedConstructError struct {
	construct string
	dialect   string
	hint      string // Optional: what would make the construct available
}

// Error returns the error string.
func (e *UnsupportedConstructError) Error() string {
	if e.hint != "" {
		return fmt.Sprintf("sqlast: %s is not supported on dialect %q (%s)", e.construct, e.dialect, e.hint)
	}
	return fmt.Sprintf("sqlast: %s is not supported on dialect %q", e.construct, e.dialect)
}

// Is reports whether the target error matches UnsupportedConstructError.
// This allows errors.Is(err, ErrUnsupported) to return true.
func (e *UnsupportedConstructError) Is(err error) bool {
	return err == ErrUnsupported
}

// Construct returns the name of the unsupported construct.
func (e *UnsupportedConstructError) Construct() string {
	return e.construct
}

// Dialect returns the dialect name the construct was rejected for.
func (e *UnsupportedConstructError) Dialect() string {
	return e.dialect
}

// NewUnsupportedConstructError returns a new UnsupportedConstructError for
// the given construct and dialect.
func NewUnsupportedConstructError(construct, dialect string) *UnsupportedConstructError {
	return &UnsupportedConstructError{construct: construct, dialect: dialect}
}

// NewUnsupportedConstructErrorHint returns a new UnsupportedConstructError
// with a hint describing what would make the construct available.
func NewUnsupportedConstructErrorHint(construct, dialect, hint string) *UnsupportedConstructError {
	return &UnsupportedConstructError{construct: construct, dialect: dialect, hint: hint}
}

// IsUnsupportedConstruct returns true if the error is an UnsupportedConstructError.
func IsUnsupportedConstruct(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedConstructError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupported)
}

// InvalidASTError reports a malformed input tree. Violations are surfaced
// immediately and never coerced: a tree that fails an invariant was built by
// buggy upstream code and silently "fixing" it would hide the bug.
type InvalidASTError struct {
	reason string
}

// Error returns the error string.
func (e *InvalidASTError) Error() string {
	return fmt.Sprintf("sqlast: invalid statement tree: %s", e.reason)
}

// Is reports whether the target error matches InvalidASTError.
// This allows errors.Is(err, ErrInvalidAST) to return true.
func (e *InvalidASTError) Is(err error) bool {
	return err == ErrInvalidAST
}

// Reason returns the invariant violation description.
func (e *InvalidASTError) Reason() string {
	return e.reason
}

// NewInvalidASTError returns a new InvalidASTError with the given reason.
func NewInvalidASTError(format string, args ...any) *InvalidASTError {
	return &InvalidASTError{reason: fmt.Sprintf(format, args...)}
}

// IsInvalidAST returns true if the error is an InvalidASTError.
func IsInvalidAST(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidASTError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidAST)
}
