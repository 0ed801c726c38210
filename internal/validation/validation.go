package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Package validation wraps go-playground/validator behind a small API
// that flattens constraint violations into plain per-field messages.
// Request DTOs declare their rules with `validate` struct tags; the
// create and update variants of a request each carry their own DTO, so
// the rule set active for an operation is the DTO it decodes into.

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates v's `validate` tags. It returns one message per
// failing field, or nil when v is valid.
func Struct(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Non-constraint error (e.g. passing a non-struct).
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return msgs
}

func message(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field %s is required", field)
	case "email":
		return fmt.Sprintf("field %s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("field %s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("field %s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("field %s must be one of [%s]", field, fe.Param())
	case "gte":
		return fmt.Sprintf("field %s must be >= %s", field, fe.Param())
	default:
		return fmt.Sprintf("field %s failed on the %s rule", field, fe.Tag())
	}
}
