package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidationError reports a request field that is missing or malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// requireText returns the trimmed value of a required text field.
func requireText(field string, v *string) (string, error) {
	if v == nil {
		return "", invalid(field, "is required")
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return "", invalid(field, "must not be blank")
	}
	return s, nil
}

// optionalText returns the value of an optional text field, or "" when absent.
func optionalText(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

// coerceAmount converts a decoded JSON value into a non-negative finite amount.
// JSON numbers and numeric strings are accepted.
func coerceAmount(field string, v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, invalid(field, "is required")
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, invalid(field, "must be a number")
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, invalid(field, "must be a number")
		}
		f = parsed
	default:
		return 0, invalid(field, "must be a number")
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalid(field, "must be a finite number")
	}
	if f < 0 {
		return 0, invalid(field, "must not be negative")
	}
	return f, nil
}

// requireArray checks that raw is a JSON array. An empty array is allowed.
func requireArray(field string, raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, invalid(field, "is required")
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, invalid(field, "must be a JSON array")
	}
	return trimmed, nil
}
