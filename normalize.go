package jisp

import (
	"encoding/json"
	"math"
	"strings"
)

// Normalize rewrites a freshly decoded value into the interpreter's value
// model. Decode with json.Decoder.UseNumber and pass the result here.
func Normalize(v any) any {
	return normalizeNumbers(v)
}

// normalizeNumbers rewrites json.Number values into int when written as an
// integer literal in the int64 range, float64 otherwise (7.0 stays float64). Operand arithmetic works on this pair,
// mirroring the signed-integer/real split of the document model.
func normalizeNumbers(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		if strings.HasPrefix(string(v), "-") {
			return -math.MaxFloat64
		}
		return math.MaxFloat64
	case int64:
		return int(v)
	case float32:
		return float64(v)
	case map[string]any:
		for k, x := range v {
			v[k] = normalizeNumbers(x)
		}
		return v
	case []any:
		for i, x := range v {
			v[i] = normalizeNumbers(x)
		}
		return v
	default:
		return v
	}
}
