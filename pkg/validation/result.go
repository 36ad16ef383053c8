package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Result is the outcome of evaluating a form. Errors maps each failing field
// to the message of its first failing rule.
type Result struct {
	Valid  bool
	Errors map[string]string
	order  []string
}

// Validate evaluates every field of the form once. The form is not modified.
func Validate(form *Form) Result {
	result := Result{Valid: true}
	for _, field := range form.Fields() {
		message, failed := field.Check()
		if !failed {
			continue
		}
		if result.Errors == nil {
			result.Errors = make(map[string]string)
		}
		result.Valid = false
		result.Errors[field.Name] = message
		result.order = append(result.order, field.Name)
	}
	return result
}

// Message returns the failure message for a field, or "" when it passed.
func (r Result) Message(name string) string {
	return r.Errors[name]
}

// Failed reports whether the named field failed.
func (r Result) Failed(name string) bool {
	_, ok := r.Errors[name]
	return ok
}

// Fields returns the failing field names in form order.
func (r Result) Fields() []string {
	return append([]string(nil), r.order...)
}

// Err returns nil for a valid result and ValidationErrors otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	errs := make(ValidationErrors, 0, len(r.order))
	for _, name := range r.order {
		errs = append(errs, FieldError{Field: name, Message: r.Errors[name]})
	}
	return errs
}

// FieldError pairs a field with its failure message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists field failures in form order.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Get returns the message for field, or "".
func (ve ValidationErrors) Get(field string) string {
	for _, err := range ve {
		if err.Field == field {
			return err.Message
		}
	}
	return ""
}

// Has reports whether field is listed.
func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// ExtractValidationErrors unwraps ValidationErrors from err.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}
