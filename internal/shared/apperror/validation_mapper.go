package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var fieldCaser = cases.Title(language.English)

// formatFieldName turns "employee_id" into "Employee Id".
func formatFieldName(s string) string {
	return fieldCaser.String(strings.ReplaceAll(s, "_", " "))
}

// MapValidationError converts the first validator failure into an AppError
// whose message names the field and the broken rule.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest)
	}

	e := errs[0]
	field := formatFieldName(e.Field())

	switch e.Tag() {
	case "required":
		return RequiredField(field)
	case "email":
		return invalidInput("%s must be a valid email address", field)
	case "min", "gte":
		if e.Kind() == reflect.String {
			return invalidInput("%s must be at least %s characters", field, e.Param())
		}
		return invalidInput("%s must be at least %s", field, e.Param())
	case "max", "lte":
		if e.Kind() == reflect.String {
			return invalidInput("%s must be at most %s characters", field, e.Param())
		}
		return invalidInput("%s must be at most %s", field, e.Param())
	case "oneof":
		return invalidInput("%s must be one of: %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return InvalidField(field)
	}
}

func invalidInput(format string, args ...any) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf(format, args...), http.StatusBadRequest)
}
