package apperr

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrReferential is returned when a write references a record that does not exist,
	// e.g. a daily log for an unknown profile.
	ErrReferential = errors.New("referenced record does not exist")
)

// ValidationError is a malformed input, rejected before any state is touched.
type ValidationError struct {
	Field string
	Err   error
}

func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Err)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FromValidation converts ozzo-validation errors into a ValidationError carrying the
// first violated field (in alphabetical order, so the result is deterministic).
// Other errors are returned as they are.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		var internalErr validation.InternalError
		if errors.As(err, &internalErr) {
			return err
		}
		return NewValidationError("", err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	first := fields[0]
	nested := fieldErrs[first]
	var nestedErrs validation.Errors
	if errors.As(nested, &nestedErrs) {
		inner := FromValidation(nestedErrs)
		var ve *ValidationError
		if errors.As(inner, &ve) && ve.Field != "" {
			return NewValidationError(first+"."+ve.Field, ve.Err)
		}
	}
	return NewValidationError(first, nested)
}
