package pdf

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseValues decodes a YAML or JSON mapping of field names to values
func ParseValues(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid values document: %w", err)
	}
	return StringValues(raw)
}

// StringValues converts scalar values to the strings a form fill expects.
// Booleans become "true" or "false"; null becomes the empty string.
func StringValues(raw map[string]any) (map[string]string, error) {
	values := make(map[string]string, len(raw))
	for name, v := range raw {
		switch v := v.(type) {
		case nil:
			values[name] = ""
		case string:
			values[name] = v
		case bool:
			values[name] = strconv.FormatBool(v)
		case int:
			values[name] = strconv.Itoa(v)
		case int64:
			values[name] = strconv.FormatInt(v, 10)
		case uint64:
			values[name] = strconv.FormatUint(v, 10)
		case float64:
			values[name] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return nil, fmt.Errorf("value of %q must be a scalar, got %T", name, v)
		}
	}
	return values, nil
}
