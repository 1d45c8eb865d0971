package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches err to the named attribute of a message or model. It
// returns nil when err is nil, so validation code can pass every check
// through it unconditionally.
//
// Names follow Go naming with dots for nesting and element indexes for
// lists, for example Patch.MaxSigners or Signers.3.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	// The stack trace is attached once, at the innermost wrap.
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: fieldName, desc: description}
}

// AppendField adds a field error to errs. A nil fieldErr leaves errs
// unchanged.
func AppendField(errs error, fieldName string, fieldErr error) error {
	return Append(errs, Field(fieldName, fieldErr, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

func (err *fieldError) Cause() error {
	return err.parent
}

func (err *fieldError) Field() string {
	return err.field
}

type fielder interface {
	Field() string
}

// FieldErrors returns every error attached to fieldName anywhere in the
// error tree of err. A field error is returned as a whole; its own children
// are not searched for the same name.
func FieldErrors(err error, fieldName string) []error {
	var found []error
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok && f.Field() == fieldName {
			return append(found, err)
		}
		switch e := err.(type) {
		case unpacker:
			// Unpack covers every child, Cause must not be followed too.
			for _, child := range e.Unpack() {
				found = append(found, FieldErrors(child, fieldName)...)
			}
			return found
		case causer:
			err = e.Cause()
		default:
			return found
		}
	}
	return found
}

// FieldIs reports whether the errors attached to fieldName match want. With
// a nil want it reports whether the field has no error at all. Otherwise at
// least one of the field errors must be want.
func FieldIs(err error, fieldName string, want *Error) bool {
	errs := FieldErrors(err, fieldName)
	if want == nil {
		return len(errs) == 0
	}
	for _, e := range errs {
		if want.Is(e) {
			return true
		}
	}
	return false
}
