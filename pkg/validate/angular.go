package validate

import "encoding/json"

// ToJSON serializes v the way Angular's toJson does: object keys beginning
// with "$$" (framework-internal properties) are dropped at every depth.
func ToJSON(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", err
	}
	cleaned, err := json.Marshal(stripInternal(decoded))
	if err != nil {
		return "", err
	}
	return string(cleaned), nil
}

func stripInternal(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			if len(k) >= 2 && k[:2] == "$$" {
				continue
			}
			out[k] = stripInternal(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = stripInternal(val)
		}
		return out
	default:
		return v
	}
}
