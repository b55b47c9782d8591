package structured

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ValueKind is the JSON type of a parsed payload.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueNumber
	ValueString
	ValueArray
	ValueObject
)

func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueBool:
		return "boolean"
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	case ValueArray:
		return "array"
	case ValueObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a payload parsed exactly once.
type Value struct {
	Kind ValueKind
	raw  gjson.Result
}

// Parse parses payload as a single JSON document.
func Parse(payload string) (Value, error) {
	payload = strings.TrimSpace(payload)
	if !gjson.Valid(payload) {
		return Value{}, malformed()
	}
	return valueOf(gjson.Parse(payload)), nil
}

func valueOf(r gjson.Result) Value {
	v := Value{raw: r}
	switch {
	case r.IsArray():
		v.Kind = ValueArray
	case r.IsObject():
		v.Kind = ValueObject
	case r.Type == gjson.Number:
		v.Kind = ValueNumber
	case r.Type == gjson.String:
		v.Kind = ValueString
	case r.Type == gjson.True, r.Type == gjson.False:
		v.Kind = ValueBool
	default:
		v.Kind = ValueNull
	}
	return v
}

// Elements returns the members of an array value.
func (v Value) Elements() []Value {
	if v.Kind != ValueArray {
		return nil
	}
	items := v.raw.Array()
	out := make([]Value, 0, len(items))
	for _, item := range items {
		out = append(out, valueOf(item))
	}
	return out
}

// Has reports whether an object value carries key.
func (v Value) Has(key string) bool {
	if v.Kind != ValueObject {
		return false
	}
	found := false
	v.raw.ForEach(func(k, _ gjson.Result) bool {
		if k.String() == key {
			found = true
			return false
		}
		return true
	})
	return found
}

// Integer returns the value as an integer when it is a JSON integer literal.
func (v Value) Integer() (int64, bool) {
	if v.Kind != ValueNumber {
		return 0, false
	}
	n, err := strconv.ParseInt(v.raw.Raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Raw returns the JSON source of the value.
func (v Value) Raw() string {
	return v.raw.Raw
}
