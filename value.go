package jisp

import (
	"encoding/json"
	"reflect"
)

// Values are plain JSON values: nil, bool, int, float64, string, []any, and
// map[string]any. Numbers are normalized on input (see normalize.go).

func clone(v any) any {
	switch v := v.(type) {
	case map[string]any:
		u := make(map[string]any, len(v))
		for k, v := range v {
			u[k] = clone(v)
		}
		return u
	case []any:
		u := make([]any, len(v))
		for i, v := range v {
			u[i] = clone(v)
		}
		return u
	default:
		return v
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, float64:
		return true
	default:
		return false
	}
}

func toFloat(v any) float64 {
	switch v := v.(type) {
	case int:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, bool, int, float64, string:
		return true
	default:
		return false
	}
}

func typeOf(v any) string {
	if v == nil {
		return "null"
	}
	switch v.(type) {
	case bool:
		return "boolean"
	case int, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return reflect.TypeOf(v).Kind().String()
	}
}

func typePreview(v any) string {
	return typeOf(v) + preview(v)
}

func preview(v any) string {
	if v == nil {
		return ""
	}
	bs, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	s, l := string(bs), 25
	if len(s) > l {
		s = s[:l-3] + " ..."
	}
	return " (" + s + ")"
}
