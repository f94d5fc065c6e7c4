package validate

import "encoding/json"

// IsJSON reports whether s is a syntactically valid JSON document.
func IsJSON(s string) bool {
	return json.Valid([]byte(s))
}
