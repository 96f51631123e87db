package domain

import "math"

// Sanitize walks a key-value document built from the tagged universe
// nil/bool/string/number/list/map and replaces every non-finite floating
// value with nil, the explicit absence marker. Containers are copied, never
// mutated in place. Values outside the universe pass through untouched.
func Sanitize(value any) any {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	case float32:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return v
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Sanitize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = Sanitize(item)
		}
		return out
	default:
		return value
	}
}
