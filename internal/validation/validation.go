// Package validation checks user-supplied options and settings before they
// are used.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/mozzadell/cc-optimizer/internal/clienterror"
	"github.com/mozzadell/cc-optimizer/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name, e.g. max_annual_fee
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates s against its `validate` tags. The first failing field is
// returned as a *clienterror.ValidationError.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validation failed: %w", err)
	}
	fe := fieldErrs[0]
	return &clienterror.ValidationError{Field: fe.Field(), Reason: reason(fe)}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("must not be less than %s", fe.Param())
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed the %q check", fe.Tag())
	}
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case models.FormatText, models.FormatJSON, models.FormatYAML, models.FormatCSV:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'text', 'json', 'yaml', 'csv'", format)
	}
}

// IsValidCSVDelimiter checks that d is exactly one character usable as a
// CSV separator.
func IsValidCSVDelimiter(d string) error {
	r, size := utf8.DecodeRuneInString(d)
	if size == 0 || size != len(d) || r == utf8.RuneError {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", d)
	}
	if r == '"' || r == '\r' || r == '\n' {
		return fmt.Errorf("CSV delimiter cannot be %q", r)
	}
	return nil
}
