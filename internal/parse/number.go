// Package parse turns loosely-typed client tokens into typed values. Every
// parser either returns a fully typed value or a wrapped sentinel error; none
// of them assign error categories, which is left to the validators.
package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Sentinel parse failures.
var (
	ErrInvalidNumber  = errors.New("invalid number")
	ErrInvalidBool    = errors.New("invalid boolean")
	ErrInvalidString  = errors.New("invalid string")
	ErrMalformedPair  = errors.New("malformed pair")
	ErrMalformedList  = errors.New("malformed list")
	ErrInvalidJSON    = errors.New("invalid JSON")
	ErrPolygonType    = errors.New("unsupported geometry type")
	ErrPolygonNesting = errors.New("coordinates must be a list of rings")
	ErrPolygonPoint   = errors.New("invalid ring coordinate")
)

// numberPattern is the strict decimal grammar: optional sign, digits and an
// optional fractional part. The whole token must match.
var numberPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

// Number parses a decimal token. Any character outside the grammar, anywhere
// in the token, rejects it.
func Number(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if !numberPattern.MatchString(t) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, nil
}

// NumberJSON parses a JSON number, or a JSON string holding a decimal token.
func NumberJSON(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		s, err := StringJSON(raw)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, raw)
		}
		return Number(s)
	}
	var v float64
	if IsAbsent(raw) || json.Unmarshal(raw, &v) != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, raw)
	}
	return v, nil
}

// Bool parses "true" or "false".
func Bool(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidBool, s)
	}
}

// BoolJSON parses a JSON boolean, or a JSON string holding "true"/"false".
func BoolJSON(raw json.RawMessage) (bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		s, err := StringJSON(raw)
		if err != nil {
			return false, fmt.Errorf("%w: %s", ErrInvalidBool, raw)
		}
		return Bool(s)
	}
	var v bool
	if IsAbsent(raw) || json.Unmarshal(raw, &v) != nil {
		return false, fmt.Errorf("%w: %s", ErrInvalidBool, raw)
	}
	return v, nil
}

// StringJSON parses a JSON string.
func StringJSON(raw json.RawMessage) (string, error) {
	var s string
	if IsAbsent(raw) || json.Unmarshal(raw, &s) != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidString, raw)
	}
	return s, nil
}

// IsJSONString reports whether raw holds a JSON string literal.
func IsJSONString(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '"'
}

// IsAbsent reports whether raw carries no value: missing, empty or null.
func IsAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
