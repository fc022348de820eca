package crud

import (
	"fmt"

	"github.com/friendsofgo/errors"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound is returned when an update, delete or status change names an
	// id that is not in the collection. The collection is left untouched.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned by a Repository when inserting an id that exists.
	ErrDuplicateID = errors.New("duplicate record id")
)

// IgnoreNotFound returns nil for ErrNotFound and err otherwise. Callers that
// want "missing id is a silent no-op" semantics wrap mutations with it.
func IgnoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// ValidationError reports a create payload or status value that was rejected
// before any mutation took place.
type ValidationError struct {
	Kind   string
	Field  string
	Reason string
}

// NewValidationError builds a ValidationError.
func NewValidationError(kind, field, reason string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s %s", e.Kind, e.Field, e.Reason)
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// fromValidator converts validator/v10 output into a *ValidationError naming
// the first failing field.
func fromValidator(kind string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrapf(err, "validate %s payload", kind)
	}

	fe := fieldErrs[0]
	reason := "failed " + fe.Tag()
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "oneof":
		reason = "must be one of [" + fe.Param() + "]"
	case "min", "gte":
		reason = "must be at least " + fe.Param()
	case "max", "lte":
		reason = "must be at most " + fe.Param()
	case "email":
		reason = "must be a valid email"
	case "gtefield":
		reason = "must not be before " + fe.Param()
	}
	return NewValidationError(kind, fe.Field(), reason)
}
