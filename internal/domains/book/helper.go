package book

import (
	"encoding/json"
	"strings"
)

// ParseCategoriesField normalizes the `categories` field of a form-encoded
// write request into a flat list of identifier strings. Clients send this
// field in several shapes: repeated form values, a JSON-encoded array string,
// a comma-separated string, or a bare single value.
//
// The parse is deliberately lenient and never fails: malformed input yields
// an empty list at worst, and identifiers that do not resolve to a real
// category are rejected later by existence validation, not here.
func ParseCategoriesField(values []string) []string {
	switch len(values) {
	case 0:
		return []string{}
	case 1:
		return parseSingleValue(values[0])
	default:
		// Repeated form field: already a list.
		return cleanList(values)
	}
}

func parseSingleValue(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []string{}
	}

	// Looks like JSON: try a structured parse first.
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		var parsed interface{}
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			list, ok := parsed.([]interface{})
			if !ok {
				// Valid JSON but not an array (object, number, ...).
				return []string{}
			}
			out := make([]string, 0, len(list))
			for _, v := range list {
				if s, ok := v.(string); ok {
					if s = strings.TrimSpace(s); s != "" {
						out = append(out, s)
					}
				}
			}
			return out
		}
		// Parse failure falls through to the comma/single-value paths.
	}

	if strings.Contains(trimmed, ",") {
		return cleanList(strings.Split(trimmed, ","))
	}

	return []string{trimmed}
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
