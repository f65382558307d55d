package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError carries human readable messages per field name.
type ValidationError struct {
	Messages map[string][]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Messages))
	for field := range e.Messages {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Messages[field], "; "))
	}

	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Has(field string) bool {
	return len(e.Messages[field]) > 0
}

// Field binds a named attribute of T to a validator tag.
type Field[T any] struct {
	Name string
	Rule string
	Get  func(*T) string
	Set  func(*T, string)
}

type RuleSet[T any] []Field[T]

// Fill copies every non-nil value onto entity. Unknown names are ignored.
func (rs RuleSet[T]) Fill(entity *T, values map[string]*string) {
	for _, field := range rs {
		if value, ok := values[field.Name]; ok && value != nil {
			field.Set(entity, *value)
		}
	}
}

// Validate checks the whole entity, not only the fields that were filled.
func (rs RuleSet[T]) Validate(entity *T) error {
	messages := make(map[string][]string)

	for _, field := range rs {
		err := validate.Var(field.Get(entity), field.Rule)
		if err == nil {
			continue
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate %s: %w", field.Name, err)
		}

		for _, fe := range fieldErrs {
			messages[field.Name] = append(messages[field.Name], message(field.Name, fe))
		}
	}

	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}

	return nil
}

func (rs RuleSet[T]) ValidateAndFill(entity *T, values map[string]*string) error {
	rs.Fill(entity, values)
	return rs.Validate(entity)
}

// Struct validates a request struct by its `validate` tags. Messages are
// keyed by the lower-cased struct field name.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	messages := make(map[string][]string)
	for _, fe := range fieldErrs {
		name := strings.ToLower(fe.Field())
		messages[name] = append(messages[name], message(name, fe))
	}

	return &ValidationError{Messages: messages}
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "url", "http_url":
		return fmt.Sprintf("The %s field must be a valid URL.", field)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
