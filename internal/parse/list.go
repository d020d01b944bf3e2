package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Delimiters of the query-string micro-grammars.
const (
	ListSeparator = "|"
	PairSeparator = ","
)

// Pairs parses "a,b|c,d" into an ordered list of numeric pairs. The first
// malformed element fails the whole list.
func Pairs(s string) ([][2]float64, error) {
	items := strings.Split(s, ListSeparator)
	out := make([][2]float64, 0, len(items))
	for i, item := range items {
		parts := strings.Split(item, PairSeparator)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: element %d %q", ErrMalformedPair, i, item)
		}
		var pair [2]float64
		for j, part := range parts {
			v, err := Number(part)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			pair[j] = v
		}
		out = append(out, pair)
	}
	return out, nil
}

// Scalars parses "a|b|c" into an ordered list of numbers.
func Scalars(s string) ([]float64, error) {
	items := strings.Split(s, ListSeparator)
	out := make([]float64, 0, len(items))
	for i, item := range items {
		v, err := Number(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// PairsJSON parses a JSON array of two-element numeric arrays. A JSON string
// is accepted too: either the pipe grammar or serialized JSON array text.
func PairsJSON(raw json.RawMessage) ([][2]float64, error) {
	if IsJSONString(raw) {
		s, err := StringJSON(raw)
		if err != nil {
			return nil, err
		}
		if t := strings.TrimSpace(s); strings.HasPrefix(t, "[") {
			return PairsJSON(json.RawMessage(t))
		}
		return Pairs(s)
	}

	items, err := array(raw)
	if err != nil {
		return nil, err
	}
	out := make([][2]float64, 0, len(items))
	for i, item := range items {
		elems, err := array(item)
		if err != nil || len(elems) != 2 {
			return nil, fmt.Errorf("%w: element %d %s", ErrMalformedPair, i, item)
		}
		var pair [2]float64
		for j, e := range elems {
			v, err := NumberJSON(e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			pair[j] = v
		}
		out = append(out, pair)
	}
	return out, nil
}

// ScalarsJSON parses a JSON array of numbers, or a pipe-separated string.
func ScalarsJSON(raw json.RawMessage) ([]float64, error) {
	if IsJSONString(raw) {
		s, err := StringJSON(raw)
		if err != nil {
			return nil, err
		}
		return Scalars(s)
	}

	items, err := array(raw)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(items))
	for i, item := range items {
		v, err := NumberJSON(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// StringsJSON parses a JSON array of strings, or a pipe-separated string.
func StringsJSON(raw json.RawMessage) ([]string, error) {
	if IsJSONString(raw) {
		s, err := StringJSON(raw)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		return strings.Split(s, ListSeparator), nil
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedList, raw)
	}
	return out, nil
}

// ObjectJSON returns the members of a JSON object. A JSON string holding a
// serialized object is unwrapped first, which is how nested structures
// arrive in query strings.
func ObjectJSON(raw json.RawMessage) (map[string]json.RawMessage, error) {
	if IsJSONString(raw) {
		s, err := StringJSON(raw)
		if err != nil {
			return nil, err
		}
		raw = json.RawMessage(s)
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return out, nil
}

func array(raw json.RawMessage) ([]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: expected array", ErrMalformedList)
	}
	var out []json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedList, err)
	}
	return out, nil
}
