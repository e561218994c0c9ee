package jsonutil

import (
	"encoding/json"
	"testing"
)

func TestUnmarshalWithContext(t *testing.T) {
	type TestStruct struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{
			name:    "valid JSON",
			data:    []byte(`{"name":"test"}`),
			wantErr: false,
		},
		{
			name:    "invalid JSON",
			data:    []byte(`not json`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v TestStruct
			err := UnmarshalWithContext(tt.data, &v, "test context")
			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalWithContext() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && v.Name != "test" {
				t.Errorf("UnmarshalWithContext() v.Name = %q, want %q", v.Name, "test")
			}
		})
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		v    interface{}
		want string
	}{
		{"string", "hello", "hello"},
		{"number", json.Number("1.50"), "1.50"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"nil", nil, ""},
		{"int", 123, "123"},
		{"array", []interface{}{"a", json.Number("1")}, `["a",1]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToString(tt.v); got != tt.want {
				t.Errorf("ToString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	obj := NewObject()
	obj.Set("z", "<b>&</b>")
	obj.Set("a", []interface{}{true, nil})

	tests := []struct {
		name string
		v    interface{}
		want string
	}{
		{"string is quoted", "CA", `"CA"`},
		{"number", json.Number("38005238"), "38005238"},
		{"null", nil, "null"},
		{"object keeps order and html", obj, `{"z":"<b>&</b>","a":[true,null]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stringify(tt.v); got != tt.want {
				t.Errorf("Stringify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestUnmarshalArrayAllowEmpty(t *testing.T) {
	type TestStruct struct {
		ID int `json:"id"`
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr bool
		wantLen int
	}{
		{
			name:    "valid non-empty array",
			data:    []byte(`[{"id":1}]`),
			wantErr: false,
			wantLen: 1,
		},
		{
			name:    "empty array",
			data:    []byte(`[]`),
			wantErr: false,
			wantLen: 0,
		},
		{
			name:    "invalid JSON",
			data:    []byte(`not json`),
			wantErr: true,
			wantLen: 0,
		},
		{
			name:    "object instead of array",
			data:    []byte(`{"id":1}`),
			wantErr: true,
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnmarshalArrayAllowEmpty[TestStruct](tt.data, "test context")
			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalArrayAllowEmpty() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if len(got) != tt.wantLen {
				t.Errorf("UnmarshalArrayAllowEmpty() len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}
