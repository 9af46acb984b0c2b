package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Error represents a validation error with an actionable remediation hint
type Error struct {
	Field       string
	Value       string
	Message     string
	Remediation string
}

func (e *Error) Error() string {
	if e.Remediation != "" {
		return fmt.Sprintf("%s: %s\nRemediation: %s", e.Field, e.Message, e.Remediation)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// OneOf validates that a value is one of the allowed values (case-insensitive)
func OneOf(field, value string, allowed []string) error {
	if value == "" {
		return nil // Empty means unset; the default applies
	}

	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}

	return &Error{
		Field:       field,
		Value:       value,
		Message:     fmt.Sprintf("invalid value: %q", value),
		Remediation: fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// Duration validates a positive Go duration (e.g., "30s", "1m30s")
func Duration(field, value string) error {
	if value == "" {
		return nil // Empty means unset; the default applies
	}

	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return &Error{
			Field:       field,
			Value:       value,
			Message:     fmt.Sprintf("invalid duration: %q", value),
			Remediation: "Provide a positive duration with a unit (e.g., 500ms, 30s, 2m)",
		}
	}
	return nil
}

// Bool validates a boolean value (true/false, 1/0, yes/no)
func Bool(field, value string) error {
	if value == "" {
		return nil // Empty means unset; the default applies
	}

	if _, err := ParseBool(value); err != nil {
		return &Error{
			Field:       field,
			Value:       value,
			Message:     fmt.Sprintf("invalid boolean: %q", value),
			Remediation: "Use one of: true, false, 1, 0, yes, no",
		}
	}
	return nil
}

// ParseBool parses the boolean forms accepted by Bool
func ParseBool(value string) (bool, error) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(value)
}

// Errors collects multiple validation errors
type Errors []error

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed:\n%s", strings.Join(messages, "\n"))
}

// HasErrors returns true if there are any errors
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// Add appends err when it is non-nil
func (e *Errors) Add(err error) {
	if err != nil {
		*e = append(*e, err)
	}
}
