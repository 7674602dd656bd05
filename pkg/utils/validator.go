package utils

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate     = newValidator()
	malawiPhone  = regexp.MustCompile(`^\+265[0-9]{9}$`)
	phoneCleaner = strings.NewReplacer(" ", "", "-", "")
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("mwphone", func(fl validator.FieldLevel) bool {
		return IsMalawiPhone(fl.Field().String())
	})
	return v
}

// CleanPhone strips spaces and dashes the way phone numbers are stored.
func CleanPhone(phone string) string {
	return phoneCleaner.Replace(strings.TrimSpace(phone))
}

func IsMalawiPhone(phone string) bool {
	return malawiPhone.MatchString(CleanPhone(phone))
}

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum is %s", err.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "datetime":
		return fmt.Sprintf("Must match format %s", err.Param())
	case "mwphone":
		return "Phone number must be in +265 format (e.g., +265123456789)"
	case "unique":
		return "Values must be unique"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, errors[field]))
	}
	return strings.Join(msgs, "; ")
}
