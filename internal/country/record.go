// Package country defines the record shape returned by the country data source
// and the derived display fields the catalog shows for each record.
package country

import (
	"encoding/json"
	"strings"

	"countrycat/internal/jsonutil"
)

// Record is one country as returned by the data source. Only a handful of
// fields are interpreted; every other field is preserved in payload order.
type Record struct {
	fields *jsonutil.Object
}

// Field is one top-level key of a record and its raw value.
type Field struct {
	Key   string
	Value interface{}
}

// NewRecord wraps an already decoded object.
func NewRecord(obj *jsonutil.Object) Record {
	if obj == nil {
		obj = jsonutil.NewObject()
	}
	return Record{fields: obj}
}

// Decode parses a JSON array of country objects. null entries are skipped.
func Decode(data []byte) ([]Record, error) {
	objs, err := jsonutil.UnmarshalArrayAllowEmpty[*jsonutil.Object](data, "decode countries")
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(objs))
	for _, obj := range objs {
		if obj == nil {
			continue
		}
		records = append(records, NewRecord(obj))
	}
	return records, nil
}

// Code2 returns the two-letter code (cca2).
func (r Record) Code2() string { return r.fields.GetString("cca2") }

// Code3 returns the three-letter code (cca3).
func (r Record) Code3() string { return r.fields.GetString("cca3") }

// DisplayName returns the official name, the primary search and sort key.
func (r Record) DisplayName() string { return r.fields.GetString("name", "official") }

// FlagImageURL returns the PNG flag asset URL.
func (r Record) FlagImageURL() string { return r.fields.GetString("flags", "png") }

// FlagEmoji returns the flag emoji, if the payload carries one.
func (r Record) FlagEmoji() string { return r.fields.GetString("flag") }

// NativeOfficialName returns the official name of the first native name
// entry in payload order, or "" when there is none.
func (r Record) NativeOfficialName() string {
	native := r.fields.GetObject("name", "nativeName")
	keys := native.Keys()
	if len(keys) == 0 {
		return ""
	}
	return native.GetString(keys[0], "official")
}

// AltSpellings returns the alternate spellings in payload order.
// Non-string entries are kept as "" so positions line up with the payload.
func (r Record) AltSpellings() []string {
	arr := r.fields.GetArray("altSpellings")
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		s, _ := v.(string)
		out = append(out, s)
	}
	return out
}

// AltSpellingsText joins the non-empty alternate spellings with ", ".
func (r Record) AltSpellingsText() string {
	parts := make([]string, 0)
	for _, s := range r.AltSpellings() {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// IDDSuffix returns the first international dialing suffix, or "".
func (r Record) IDDSuffix() string {
	suffixes := r.fields.GetArray("idd", "suffixes")
	if len(suffixes) == 0 {
		return ""
	}
	return jsonutil.ToString(suffixes[0])
}

// Key returns the row key used to identify the record in a table.
func (r Record) Key() string {
	return r.Code2()
}

// Fields returns every top-level field in payload order.
func (r Record) Fields() []Field {
	keys := r.fields.Keys()
	out := make([]Field, 0, len(keys))
	for _, k := range keys {
		v, _ := r.fields.Get(k)
		out = append(out, Field{Key: k, Value: v})
	}
	return out
}

// Raw returns the underlying ordered object.
func (r Record) Raw() *jsonutil.Object {
	return r.fields
}

// MarshalJSON writes the record back out with its original key order.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.fields)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	obj := jsonutil.NewObject()
	if err := obj.UnmarshalJSON(data); err != nil {
		return err
	}
	r.fields = obj
	return nil
}
