package schema

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Rule is a single validation rule token. Rules are either bare names
// ("required", "integer", "url") or parameterized ("min:2", "in:a,b,c").
type Rule string

// Name returns the rule name without parameters.
func (r Rule) Name() string {
	s := string(r)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i]
	}
	return s
}

// Param returns the raw parameter string after the colon, if any.
func (r Rule) Param() string {
	s := string(r)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[i+1:]
	}
	return ""
}

// datetimeLayouts are the accepted datetime input formats, most specific first.
var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// RuleError represents a single-field validation failure.
type RuleError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message"`
}

func (e RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds all validation errors for one value or record.
type ValidationResult struct {
	Valid  bool        `json:"valid"`
	Errors []RuleError `json:"errors,omitempty"`
}

// AddError adds a validation error.
func (r *ValidationResult) AddError(field, rule string, value any, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, RuleError{
		Field:   field,
		Rule:    rule,
		Value:   value,
		Message: message,
	})
}

// Error returns a combined error message.
func (r ValidationResult) Error() string {
	if r.Valid {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// ValidateRule validates a value against a single rule.
// This is a PURE function: rules over external state (media listings,
// tag vocabularies) must be materialized into "in:" rules by the caller.
// A nil return means the value passed.
func ValidateRule(fieldName string, value any, rule Rule) *RuleError {
	switch rule.Name() {
	case "required":
		return validateRequired(fieldName, value)
	case "string":
		return validateString(fieldName, value)
	case "integer":
		return validateInteger(fieldName, value)
	case "numeric":
		return validateNumeric(fieldName, value)
	case "boolean":
		return validateBoolean(fieldName, value)
	case "date":
		return validateDate(fieldName, value)
	case "array":
		return validateArray(fieldName, value)
	case "url":
		return validateURL(fieldName, value)
	case "min":
		return validateMin(fieldName, value, rule)
	case "max":
		return validateMax(fieldName, value, rule)
	case "between":
		return validateBetween(fieldName, value, rule)
	case "in":
		return validateIn(fieldName, value, rule)
	default:
		// Unknown rule tokens are skipped, matching the permissive
		// handling of misconfigured constraints upstream.
		return nil
	}
}

func validateRequired(field string, value any) *RuleError {
	if value == nil {
		return &RuleError{Field: field, Rule: "required", Message: "field is required"}
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return &RuleError{Field: field, Rule: "required", Value: value, Message: "field is required"}
	}
	return nil
}

func validateString(field string, value any) *RuleError {
	if _, ok := value.(string); !ok {
		return &RuleError{Field: field, Rule: "string", Value: value, Message: "must be a string"}
	}
	return nil
}

func validateInteger(field string, value any) *RuleError {
	switch v := value.(type) {
	case int, int32, int64:
		return nil
	case float64:
		if v == float64(int64(v)) {
			return nil
		}
	case string:
		if _, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return nil
		}
	}
	return &RuleError{Field: field, Rule: "integer", Value: value, Message: "must be an integer"}
}

func validateNumeric(field string, value any) *RuleError {
	if _, err := toFloat64(value); err != nil {
		return &RuleError{Field: field, Rule: "numeric", Value: value, Message: "must be a number"}
	}
	return nil
}

func validateBoolean(field string, value any) *RuleError {
	switch v := value.(type) {
	case bool:
		return nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "false", "1", "0":
			return nil
		}
	}
	return &RuleError{Field: field, Rule: "boolean", Value: value, Message: "must be a boolean"}
}

func validateDate(field string, value any) *RuleError {
	switch v := value.(type) {
	case time.Time:
		return nil
	case string:
		for _, layout := range datetimeLayouts {
			if _, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return nil
			}
		}
	}
	return &RuleError{Field: field, Rule: "date", Value: value, Message: "must be a valid datetime"}
}

func validateArray(field string, value any) *RuleError {
	switch value.(type) {
	case []string, []any:
		return nil
	}
	return &RuleError{Field: field, Rule: "array", Value: value, Message: "must be a list of values"}
}

func validateURL(field string, value any) *RuleError {
	str, ok := value.(string)
	if !ok {
		return &RuleError{Field: field, Rule: "url", Value: value, Message: "must be a valid URL"}
	}
	u, err := url.ParseRequestURI(str)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &RuleError{Field: field, Rule: "url", Value: value, Message: "must be a valid URL"}
	}
	return nil
}

func validateMin(field string, value any, rule Rule) *RuleError {
	min, err := strconv.ParseFloat(rule.Param(), 64)
	if err != nil {
		return nil // Invalid rule config, skip
	}

	size, sizeKind, err := valueSize(value)
	if err != nil {
		return nil // Can't size this value, skip
	}

	if size < min {
		return &RuleError{
			Field:   field,
			Rule:    "min",
			Value:   value,
			Message: sizeMessage(sizeKind, "at least", min),
		}
	}
	return nil
}

func validateMax(field string, value any, rule Rule) *RuleError {
	max, err := strconv.ParseFloat(rule.Param(), 64)
	if err != nil {
		return nil
	}

	size, sizeKind, err := valueSize(value)
	if err != nil {
		return nil
	}

	if size > max {
		return &RuleError{
			Field:   field,
			Rule:    "max",
			Value:   value,
			Message: sizeMessage(sizeKind, "at most", max),
		}
	}
	return nil
}

func validateBetween(field string, value any, rule Rule) *RuleError {
	parts := strings.SplitN(rule.Param(), ",", 2)
	if len(parts) != 2 {
		return nil
	}
	lo, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	hi, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return nil
	}

	size, _, err := valueSize(value)
	if err != nil {
		return nil
	}

	if size < lo || size > hi {
		return &RuleError{
			Field:   field,
			Rule:    "between",
			Value:   value,
			Message: fmt.Sprintf("must be between %v and %v", lo, hi),
		}
	}
	return nil
}

func validateIn(field string, value any, rule Rule) *RuleError {
	allowed := splitList(rule.Param())
	strVal := fmt.Sprintf("%v", value)

	for _, a := range allowed {
		if a == strVal {
			return nil
		}
	}

	msg := "no values are currently available"
	if len(allowed) > 0 {
		msg = fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", "))
	}
	return &RuleError{Field: field, Rule: "in", Value: value, Message: msg}
}

// splitList splits an "in:" parameter into its members, dropping empties.
func splitList(param string) []string {
	if param == "" {
		return nil
	}
	parts := strings.Split(param, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// valueSize maps a value to its comparable magnitude: numeric values
// compare by value, strings by character count, lists by element count.
func valueSize(value any) (float64, string, error) {
	switch v := value.(type) {
	case string:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n, "number", nil
		}
		return float64(len([]rune(v))), "chars", nil
	case []string:
		return float64(len(v)), "items", nil
	case []any:
		return float64(len(v)), "items", nil
	default:
		n, err := toFloat64(value)
		if err != nil {
			return 0, "", err
		}
		return n, "number", nil
	}
}

func sizeMessage(kind, bound string, limit float64) string {
	switch kind {
	case "chars":
		return fmt.Sprintf("must be %s %v characters", bound, limit)
	case "items":
		return fmt.Sprintf("must have %s %v items", bound, limit)
	default:
		return fmt.Sprintf("must be %s %v", bound, limit)
	}
}

// toFloat64 converts various numeric types to float64.
func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("cannot convert %T to float64", v)
	}
}
