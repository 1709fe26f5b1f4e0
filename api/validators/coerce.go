package validators

import (
	"math"
	"strings"
)

// Truthy mirrors loose JSON truthiness: nil, false, 0, and "" are false.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	case int:
		return v != 0
	}
	return true
}

// BoolOr returns value coerced with Truthy, or def when value is absent.
func BoolOr(value any, def bool) bool {
	if value == nil {
		return def
	}
	return Truthy(value)
}

// Strings keeps the string elements of a JSON array. Anything else yields an empty slice.
func Strings(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Array returns value when it is a JSON array, otherwise an empty slice.
func Array(value any) []any {
	if items, ok := value.([]any); ok {
		return items
	}
	return []any{}
}

// Object returns value when it is a JSON object, otherwise an empty map.
func Object(value any) map[string]any {
	if obj, ok := value.(map[string]any); ok {
		return obj
	}
	return map[string]any{}
}

// StringOr returns the trimmed string value, or def when value is not a non-empty string.
func StringOr(value any, def string) string {
	if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	return def
}
