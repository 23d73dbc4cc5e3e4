package helm

import (
	"bytes"
	"fmt"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Values represents helm chart values as a map.
type Values map[string]any

// Merge deep-merges override maps onto base, later overrides winning on
// conflict. Base and overrides are left untouched.
func Merge(base Values, overrides ...Values) (Values, error) {
	// mergo shares nested maps from its sources into the destination, so
	// the base must be copied up front or later merges would write into it.
	result := base.DeepCopy()
	for _, o := range overrides {
		if err := mergo.Merge(&result, o.DeepCopy(), mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge values: %w", err)
		}
	}
	return result, nil
}

// DeepCopy returns a structural copy of the values, cloning nested maps and
// slices.
func (v Values) DeepCopy() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = copyAny(val)
	}
	return out
}

func copyAny(v any) any {
	switch v := v.(type) {
	case Values:
		return v.DeepCopy()
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = copyAny(e)
		}
		return out
	case []any:
		cp := make([]any, len(v))
		for i, e := range v {
			cp[i] = copyAny(e)
		}
		return cp
	default:
		return v
	}
}

// ToYAML converts values to YAML bytes.
func (v Values) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode values to YAML: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses YAML bytes into Values.
func FromYAML(data []byte) (Values, error) {
	var values Values
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse YAML values: %w", err)
	}
	return values, nil
}
