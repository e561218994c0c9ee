package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Object is a JSON object that remembers the order its keys appeared in.
// Values are string, json.Number, bool, nil, []interface{} or *Object.
type Object struct {
	keys   []string
	values map[string]interface{}
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]interface{})}
}

// Set stores v under key. A new key is appended; an existing key keeps its position.
func (o *Object) Set(key string, v interface{}) {
	if o.values == nil {
		o.values = make(map[string]interface{})
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (interface{}, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Lookup walks nested objects along path and returns the value at the end.
// Any missing segment or non-object intermediate yields (nil, false).
func (o *Object) Lookup(path ...string) (interface{}, bool) {
	var cur interface{} = o
	for _, key := range path {
		obj, ok := cur.(*Object)
		if !ok || obj == nil {
			return nil, false
		}
		cur, ok = obj.values[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// GetString returns the string at path, or "" if it is absent or not a string.
func (o *Object) GetString(path ...string) string {
	v, _ := o.Lookup(path...)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// GetObject returns the object at path, or nil.
func (o *Object) GetObject(path ...string) *Object {
	v, _ := o.Lookup(path...)
	if obj, ok := v.(*Object); ok {
		return obj
	}
	return nil
}

// GetArray returns the array at path, or nil.
func (o *Object) GetArray(path ...string) []interface{} {
	v, _ := o.Lookup(path...)
	if arr, ok := v.([]interface{}); ok {
		return arr
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler, keeping key order and number spelling.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	obj, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*o = *obj
	return nil
}

// MarshalJSON implements json.Marshaler, writing keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encode(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := encode(o.values[key])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); ok {
		switch d {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", d)
	}
	if n, ok := tok.(json.Number); ok {
		return NormalizeNumber(n), nil
	}
	return tok, nil
}

// NormalizeNumber rewrites n in the shortest form that parses back to the
// same float64: 17.0 becomes 17, 1.50 becomes 1.5 and 1E-7 becomes 1e-7.
// Magnitudes below 1e-6 or from 1e21 up use exponent notation. Numbers
// outside the float64 range are returned unchanged.
func NormalizeNumber(n json.Number) json.Number {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return n
	}
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs < 1e-6 || abs >= 1e21 {
		s := strconv.FormatFloat(f, 'g', -1, 64)
		s = strings.Replace(s, "e-0", "e-", 1)
		s = strings.Replace(s, "e+0", "e+", 1)
		return json.Number(s)
	}
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
}

// decodeObject reads key/value pairs up to and including the closing brace.
func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("object key is not a string")
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		obj.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]interface{}, error) {
	arr := make([]interface{}, 0)
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
