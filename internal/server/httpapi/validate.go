package httpapi

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors converts validator output into per-field messages. It returns
// nil when err is not a validation error.
func fieldErrors(err error) map[string][]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Ensure this field has at least " + fe.Param() + " characters."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	case "eqfield":
		return "Password fields didn't match."
	default:
		return "Invalid value."
	}
}
