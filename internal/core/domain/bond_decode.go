package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

var dateType = reflect.TypeOf(Date{})

// UnmarshalJSON decodes each field on its own so one malformed value does not
// hide the others. Blank values ("" or null) are treated as absent. A value of
// the wrong type is recorded in Invalid instead of failing the decode; only a
// body that is not a JSON object is an error.
func (p *BondParameters) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("bond parameters must be a JSON object: %w", err)
	}

	var out BondParameters
	v := reflect.ValueOf(&out).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		value, ok := raw[name]
		if !ok || isBlankJSON(value) {
			continue
		}
		target := v.Field(i)
		if err := json.Unmarshal(value, target.Addr().Interface()); err != nil {
			target.Set(reflect.Zero(field.Type))
			if out.Invalid == nil {
				out.Invalid = make(map[string]string)
			}
			out.Invalid[name] = conversionMessage(field.Type)
		}
	}
	*p = out
	return nil
}

func isBlankJSON(value json.RawMessage) bool {
	trimmed := bytes.TrimSpace(value)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`))
}

func conversionMessage(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch {
	case t == dateType:
		return "must be a valid date (YYYY-MM-DD)"
	case t.Kind() == reflect.Float64:
		return "must be a number"
	case t.Kind() == reflect.Int:
		return "must be a whole number"
	case t.Kind() == reflect.String:
		return "must be a string"
	default:
		return "is invalid"
	}
}
