package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errNoJSONArray = errors.New("llm: response holds no JSON array")

// ParseLocations decodes a model reply into inferred locations. It accepts a
// bare array, an array wrapped in a markdown code fence, or an object with a
// single array-valued key.
func ParseLocations(content string) ([]InferredLocation, error) {
	raw := strings.TrimSpace(stripFence(content))

	if strings.HasPrefix(raw, "{") {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal([]byte(raw), &wrapper); err == nil {
			for _, v := range wrapper {
				if trimmed := strings.TrimSpace(string(v)); strings.HasPrefix(trimmed, "[") {
					raw = trimmed
					break
				}
			}
		}
	}

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end < start {
		return nil, errNoJSONArray
	}

	var items []InferredLocation
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("decode inferred locations: %w", err)
	}

	out := items[:0]
	for _, it := range items {
		it.LocationName = strings.TrimSpace(it.LocationName)
		if it.LocationName == "" {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSuffix(strings.TrimSpace(s), "```")
}
