package core

import (
	"errors"
	"fmt"
)

// Sentinel classes for the error taxonomy. Services attach human-readable
// reasons via the constructors below; the web adapter maps each class to an
// HTTP status with errors.Is and surfaces the reason verbatim.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("resource not found")
	ErrValidation      = errors.New("invalid request")
)

type classifiedError struct {
	class  error
	reason string
}

func (e *classifiedError) Error() string { return e.reason }
func (e *classifiedError) Unwrap() error { return e.class }

func classify(class error, format string, args ...any) error {
	return &classifiedError{class: class, reason: fmt.Sprintf(format, args...)}
}

// NotFoundf reports a missing warehouse, product or profile.
func NotFoundf(format string, args ...any) error {
	return classify(ErrNotFound, format, args...)
}

// Forbiddenf reports an access-policy rejection for an authenticated user.
func Forbiddenf(format string, args ...any) error {
	return classify(ErrForbidden, format, args...)
}

// Validationf reports a business-rule violation. These are always detected
// before any mutating write.
func Validationf(format string, args ...any) error {
	return classify(ErrValidation, format, args...)
}

// Unauthenticatedf reports a missing or unusable credential.
func Unauthenticatedf(format string, args ...any) error {
	return classify(ErrUnauthenticated, format, args...)
}
