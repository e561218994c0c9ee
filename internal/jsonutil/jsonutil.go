// Package jsonutil provides shared utilities for JSON parsing patterns:
// error handling, order-preserving objects, and uniform value serialization.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// UnmarshalArrayAllowEmpty unmarshals JSON data into a slice.
// An empty array is not an error.
func UnmarshalArrayAllowEmpty[T any](data []byte, context string) ([]T, error) {
	var entries []T
	if err := UnmarshalWithContext(data, &entries, context); err != nil {
		return nil, err
	}
	return entries, nil
}

// ToString converts a decoded JSON value to a plain string.
// Strings are returned unquoted; numbers print as decoded.
func ToString(v interface{}) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return Stringify(val)
	}
}

// Stringify renders v as compact JSON. Object key order is preserved and
// HTML characters are left unescaped. Values that cannot be encoded fall
// back to their %v form.
func Stringify(v interface{}) string {
	b, err := encode(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
