// Package yamlx funnels YAML documents through JSON so callers can keep a
// single strict JSON decode path for both formats.
package yamlx

import (
	"encoding/json"
	"fmt"

	yaml "go.yaml.in/yaml/v3"
)

// JSONBytes decodes a YAML document and re-encodes it as JSON.
func JSONBytes(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	j, err := json.Marshal(Stringify(v))
	if err != nil {
		return nil, fmt.Errorf("yaml to json: %w", err)
	}
	return j, nil
}

// Stringify recursively rewrites map keys to strings. encoding/json rejects
// map[any]any, which older YAML decoders produce for nested mappings.
func Stringify(in any) any {
	switch x := in.(type) {
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, v := range x {
			out[fmt.Sprint(k)] = Stringify(v)
		}
		return out
	case map[string]any:
		for k, v := range x {
			x[k] = Stringify(v)
		}
		return x
	case []any:
		for i, v := range x {
			x[i] = Stringify(v)
		}
		return x
	default:
		return in
	}
}
