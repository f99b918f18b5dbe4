// utils/validation.go - Declarative request validation
//
// Create endpoints validate their payloads against per-module rule sets: a
// list of (field, when-predicate, checks) evaluated in one pass producing a
// field -> messages map. Existence checks against the database are injected as
// ports so the rules themselves stay free of global state.
package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Values is a decoded JSON request body.
type Values map[string]interface{}

// FieldErrors maps a field name to its validation messages.
type FieldErrors map[string][]string

// Check inspects one field of the payload. It returns a message when the
// value is invalid, and a non-nil error only for infrastructure failures
// (e.g. a lookup port that could not reach the database).
type Check func(field string, values Values) (string, error)

// Rule applies its checks to one field, optionally gated on a predicate over
// the other fields (the required_if pattern).
type Rule struct {
	Field  string
	When   func(Values) bool
	Checks []Check
}

// RuleSet is an ordered list of rules for one request shape.
type RuleSet []Rule

// Validate evaluates every applicable rule. Checks for a field run in order
// and stop at the first failure so a missing field yields one message, not a
// cascade. A non-empty FieldErrors means the request must be rejected with no
// rows written.
func (rs RuleSet) Validate(values Values) (FieldErrors, error) {
	errs := FieldErrors{}
	for _, rule := range rs {
		if rule.When != nil && !rule.When(values) {
			continue
		}
		for _, check := range rule.Checks {
			msg, err := check(rule.Field, values)
			if err != nil {
				return nil, err
			}
			if msg != "" {
				errs[rule.Field] = append(errs[rule.Field], msg)
				break
			}
		}
	}
	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}

// String returns the trimmed string value of a field, or "" when the field is
// absent or not a string.
func (v Values) String(field string) string {
	s, _ := v[field].(string)
	return strings.TrimSpace(s)
}

// Number returns the numeric value of a field. JSON numbers decode as float64.
func (v Values) Number(field string) (float64, bool) {
	switch n := v[field].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// Present reports whether a field carries a non-empty value.
func (v Values) Present(field string) bool {
	raw, ok := v[field]
	if !ok || raw == nil {
		return false
	}
	if s, isStr := raw.(string); isStr {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// Required fails when the field is absent or empty.
func Required() Check {
	return func(field string, values Values) (string, error) {
		if !values.Present(field) {
			return "This field is required", nil
		}
		return "", nil
	}
}

// OneOf fails unless the field's string value is in the allowed set.
func OneOf(options ...string) Check {
	return func(field string, values Values) (string, error) {
		value := values.String(field)
		if value == "" {
			return "", nil
		}
		for _, option := range options {
			if value == option {
				return "", nil
			}
		}
		return fmt.Sprintf("Must be one of: %s", strings.Join(options, ", ")), nil
	}
}

// MaxLen fails when the string value exceeds n characters.
func MaxLen(n int) Check {
	return func(field string, values Values) (string, error) {
		if len(values.String(field)) > n {
			return fmt.Sprintf("Must not exceed %d characters", n), nil
		}
		return "", nil
	}
}

// NumberMin fails when the field is not numeric or below min.
func NumberMin(min float64) Check {
	return func(field string, values Values) (string, error) {
		if !values.Present(field) {
			return "", nil
		}
		n, ok := values.Number(field)
		if !ok {
			return "Must be a number", nil
		}
		if n < min {
			return fmt.Sprintf("Must be at least %v", min), nil
		}
		return "", nil
	}
}

// IntegerMin fails when the field is not a whole number or below min.
func IntegerMin(min int) Check {
	return func(field string, values Values) (string, error) {
		if !values.Present(field) {
			return "", nil
		}
		n, ok := values.Number(field)
		if !ok || n != float64(int(n)) {
			return "Must be a whole number", nil
		}
		if int(n) < min {
			return fmt.Sprintf("Must be at least %d", min), nil
		}
		return "", nil
	}
}

// DateISO fails unless the string value parses as YYYY-MM-DD.
func DateISO() Check {
	return func(field string, values Values) (string, error) {
		value := values.String(field)
		if value == "" {
			return "", nil
		}
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return "Must be a date in YYYY-MM-DD format", nil
		}
		return "", nil
	}
}

// Matches fails unless the string value matches the pattern.
func Matches(pattern *regexp.Regexp, message string) Check {
	return func(field string, values Values) (string, error) {
		value := values.String(field)
		if value == "" {
			return "", nil
		}
		if !pattern.MatchString(value) {
			return message, nil
		}
		return "", nil
	}
}

// Exists fails unless the injected port confirms the value resolves. The port
// error is surfaced as an infrastructure failure, not a field message.
func Exists(port func(value string) (bool, error), message string) Check {
	return func(field string, values Values) (string, error) {
		value := values.String(field)
		if value == "" {
			return "", nil
		}
		ok, err := port(value)
		if err != nil {
			return "", err
		}
		if !ok {
			return message, nil
		}
		return "", nil
	}
}
