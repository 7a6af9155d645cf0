package utils

import (
	"encoding/json"
	"strings"
)

// JSONLines marshals a string slice (trimmed, empties dropped) for storage
// in a jsonb column.
func JSONLines(lines []string) ([]byte, error) {
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, ln)
		}
	}
	return json.Marshal(out)
}

// LinesFromJSON decodes a jsonb array of strings. Malformed or empty input
// yields nil rather than an error; stored display text is best-effort.
func LinesFromJSON(blob []byte) []string {
	if len(blob) == 0 {
		return nil
	}
	var lines []string
	if err := json.Unmarshal(blob, &lines); err != nil {
		return nil
	}
	return lines
}
