package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	labeledFenceRe = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	plainFenceRe   = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
)

// ExtractJSON returns the JSON payload embedded in a model reply.
// Models frequently wrap structured output in markdown fences even when asked
// not to; the lookup order is: a ```json block, any fenced block, then the
// whole reply trimmed.
func ExtractJSON(reply string) string {
	if m := labeledFenceRe.FindStringSubmatch(reply); m != nil {
		return m[1]
	}
	if m := plainFenceRe.FindStringSubmatch(reply); m != nil {
		return m[1]
	}
	return strings.TrimSpace(reply)
}

// DecodeJSON extracts the JSON payload from reply and unmarshals it into v.
func DecodeJSON(reply string, v any) error {
	return json.Unmarshal([]byte(ExtractJSON(reply)), v)
}
