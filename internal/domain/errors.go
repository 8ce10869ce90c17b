package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// them with errors.Is.
var (
	ErrValidation        = errors.New("validation error")
	ErrCapacity          = errors.New("capacity error")
	ErrBlockedResource   = errors.New("blocked resource")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicate         = errors.New("duplicate")
	ErrNotFound          = errors.New("not found")
	ErrInvalidState      = errors.New("invalid state")
)

// DomainError carries a machine readable code on top of its kind.
type DomainError struct {
	Kind    error
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func NewError(kind error, code, format string, args ...any) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// MovementError wraps a failure of Execute or Cancel. RollbackErr is set when
// the compensating pass could not undo everything already applied.
type MovementError struct {
	MovementID  string
	Op          string
	Err         error
	RollbackErr error
}

func (e *MovementError) Error() string {
	msg := fmt.Sprintf("movement %s: %s: %v", e.MovementID, e.Op, e.Err)
	if e.RollbackErr != nil {
		msg += fmt.Sprintf(" (rollback incomplete: %v)", e.RollbackErr)
	}
	return msg
}

func (e *MovementError) Unwrap() []error {
	if e.RollbackErr == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.RollbackErr}
}

// ErrorCode returns the DomainError code found in err's chain, or "".
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
