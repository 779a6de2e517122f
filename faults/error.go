package faults

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure. Every failure is synchronous and
// leaves the entity untouched: mutators validate fully before committing.
type Kind string

const (
	InvalidArgument  Kind = "InvalidArgument"
	InvalidMonth     Kind = "InvalidMonth"
	DuplicateMonth   Kind = "DuplicateMonth"
	MonthNotFound    Kind = "MonthNotFound"
	NoCapacityPlan   Kind = "NoCapacityPlan"
	EmptyPlan        Kind = "EmptyPlan"
	InvalidRange     Kind = "InvalidRange"
	CurrencyMismatch Kind = "CurrencyMismatch"
	MissingField     Kind = "MissingField"
)

// Error carries the failure Kind plus human readable details
type Error struct {
	Kind     Kind
	Message  string
	Messages []string
}

func (e *Error) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Messages)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches by Kind so errors.Is works against the kind constructors
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func (e *Error) WithMessage(msg string) *Error {
	e.Message = msg
	return e
}

func (e *Error) WithMessagef(format string, args ...interface{}) *Error {
	e.Message = fmt.Sprintf(format, args...)
	return e
}

func (e *Error) AddMessages(msgs ...string) *Error {
	e.Messages = append(e.Messages, msgs...)
	return e
}

func makeError(kind Kind) *Error {
	return &Error{
		Kind:     kind,
		Messages: make([]string, 0),
	}
}

// KindOf unwraps err (including pkg/errors wrapping) and reports its Kind
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// -----------------------------------------------

func ErrInvalidArgument() *Error {
	return makeError(InvalidArgument).
		WithMessage("Invalid argument")
}

func ErrInvalidMonth() *Error {
	return makeError(InvalidMonth).
		WithMessage("Month key is not in YYYY-MM format")
}

func ErrDuplicateMonth() *Error {
	return makeError(DuplicateMonth).
		WithMessage("Month already exists in the capacity plan")
}

func ErrMonthNotFound() *Error {
	return makeError(MonthNotFound).
		WithMessage("Month does not exist in the capacity plan")
}

func ErrNoCapacityPlan() *Error {
	return makeError(NoCapacityPlan).
		WithMessage("Operation requires an existing capacity plan")
}

func ErrEmptyPlan() *Error {
	return makeError(EmptyPlan).
		WithMessage("Capacity plan has no entries")
}

func ErrInvalidRange() *Error {
	return makeError(InvalidRange).
		WithMessage("Invalid month range")
}

func ErrCurrencyMismatch() *Error {
	return makeError(CurrencyMismatch).
		WithMessage("Currency does not match the subscription's currency")
}

func ErrMissingField() *Error {
	return makeError(MissingField).
		WithMessage("Required field is missing")
}
