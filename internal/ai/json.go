package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// cleanJSON strips markdown fences and any prose around the first JSON value
func cleanJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```JSON")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return s
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end < start {
		return s[start:]
	}
	return s[start : end+1]
}

func decodeJSON[T any](raw string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &v); err != nil {
		return v, fmt.Errorf("failed to parse json: %w", err)
	}
	return v, nil
}
