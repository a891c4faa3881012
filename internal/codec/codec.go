// Package codec validates and shapes the JSON payloads exchanged with the
// API. Decoding is strict on required fields and permissive on unknown ones;
// failures carry the offending path, e.g. "user.name.first: expected string".
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/kevgathuku/docue/internal/core/domain"
)

// FieldError reports a payload field that is missing or has the wrong type.
type FieldError struct {
	Path string
	Want string
}

func (e *FieldError) Error() string { return e.Path + ": expected " + e.Want }

func (e *FieldError) Unwrap() error { return domain.ErrDecode }

func errExpected(path, want string) error {
	return &FieldError{Path: path, Want: want}
}

// object is a partially decoded JSON object; fields stay raw until a typed
// accessor pulls them out.
type object map[string]json.RawMessage

func asObject(data []byte, path string) (object, error) {
	var o object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, errExpected(path, "object")
	}
	return o, nil
}

func (o object) requireString(path, field string) (string, error) {
	raw, ok := o[field]
	if !ok {
		return "", errExpected(path+"."+field, "string")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errExpected(path+"."+field, "string")
	}
	return s, nil
}

func (o object) optionalString(path, field string) (string, error) {
	if _, ok := o[field]; !ok {
		return "", nil
	}
	return o.requireString(path, field)
}

func (o object) requireInt(path, field string) (int, error) {
	raw, ok := o[field]
	if !ok {
		return 0, errExpected(path+"."+field, "int")
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, errExpected(path+"."+field, "int")
	}
	return n, nil
}

// requireID accepts "id" with a fallback to Mongo-style "_id".
func (o object) requireID(path string) (string, error) {
	if _, ok := o["id"]; ok {
		return o.requireString(path, "id")
	}
	if raw, ok := o["_id"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", errExpected(path+".id", "string")
		}
		return s, nil
	}
	return "", errExpected(path+".id", "string")
}

func decodeList[T any](data []byte, path string, dec func([]byte, string) (T, error)) ([]T, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, errExpected(path, "array")
	}
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		v, err := dec(raw, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
