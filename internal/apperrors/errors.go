package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// Opening balance batch lifecycle precondition errors. These are expected
// failures recovered at the operation boundary, not internal faults.
var (
	// ErrBatchNotDraft is returned when a mutation requires a DRAFT batch.
	ErrBatchNotDraft = errors.New("opening balance batch is not in draft status")

	// ErrBatchNotPosted is returned when a reversal targets a batch that is not POSTED.
	ErrBatchNotPosted = errors.New("opening balance batch is not in posted status")

	// ErrPeriodAlreadyPosted is returned when another batch for the same
	// company and period has already been posted.
	ErrPeriodAlreadyPosted = errors.New("a posted opening balance batch already exists for this period")

	// ErrBatchUnbalanced is returned when a batch's debit and credit totals
	// do not match within tolerance at posting time.
	ErrBatchUnbalanced = errors.New("opening balance batch debits do not equal credits")
)

// AppError wraps an underlying error with an HTTP-style code and a message
// suitable for logging. Repositories use it for unexpected store failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// IsNotFound reports whether err matches ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
