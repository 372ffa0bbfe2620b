package config

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Flatten converts a nested client document into a single-level mapping
// keyed by dot-joined paths: {"brand": {"primary": "#fff"}} becomes
// {"brand.primary": "#fff"}. Scalar leaves are coerced to text; empty
// nested documents contribute no entries.
func Flatten(doc ClientDocument) map[string]string {
	result := make(map[string]string)
	flattenInto(result, map[string]any(doc), "")
	return result
}

func flattenInto(result map[string]string, node map[string]any, prefix string) {
	for key, value := range node {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flattenInto(result, v, fullKey)
		case ClientDocument:
			flattenInto(result, map[string]any(v), fullKey)
		default:
			result[fullKey] = coerceScalar(value)
		}
	}
}

// coerceScalar renders a leaf value as template-insertable text. Sequences
// are rendered as their compact JSON encoding; null becomes the empty
// string.
func coerceScalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []any:
		if encoded, err := json.Marshal(v); err == nil {
			return string(encoded)
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
