// Package convert translates backend configuration files (security
// rules, index definitions) between JSON and YAML.
package convert

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Format is a supported configuration file format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates a format name from the command line.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json or yaml)", name)
}

// Convert re-encodes a configuration document from one format to the
// other. Converting a document to its own format normalizes it
// (indentation, key quoting) without changing content.
func Convert(data []byte, from, to Format) ([]byte, error) {
	var doc any
	switch from {
	case JSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		doc = normalize(doc)
	default:
		return nil, fmt.Errorf("unknown source format %q", from)
	}

	switch to {
	case JSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding JSON: %w", err)
		}
		return append(out, '\n'), nil
	case YAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown target format %q", to)
}

// normalize rewrites yaml.v3's map[string]any/any trees so every map is
// string-keyed, which encoding/json requires.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	}
	return v
}
