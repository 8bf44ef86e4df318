package common

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// CleanJSONResponse extracts a parseable payload from generated text that
// may wrap JSON in prose or markdown code fences. It returns the substring
// starting at the first '{' or '[' token, whichever occurs first, with
// fence markers removed. When no opening token exists it returns "{}" so
// downstream decoding always has something to chew on. It never fails;
// JSON validity is the caller's problem.
func CleanJSONResponse(raw string) string {
	s := strings.ReplaceAll(raw, "```json", "")
	s = strings.ReplaceAll(s, "```", "")

	objIdx := strings.IndexByte(s, '{')
	arrIdx := strings.IndexByte(s, '[')

	start := objIdx
	if start < 0 || (arrIdx >= 0 && arrIdx < start) {
		start = arrIdx
	}
	if start < 0 {
		return "{}"
	}

	return strings.TrimSpace(s[start:])
}

// DecodeLoose sanitizes raw generated text and decodes it into v. When a
// strict decode fails it runs the payload through JSON repair (unquoted
// keys, trailing commas, truncated arrays) and tries once more. Callers
// must treat a returned error as "use your fallback value" — parse
// failures never propagate past the sync engine.
func DecodeLoose(raw string, v any) error {
	cleaned := CleanJSONResponse(raw)

	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	repaired, err := jsonrepair.RepairJSON(cleaned)
	if err != nil {
		return fmt.Errorf("response is not recoverable JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("failed to decode repaired response: %w", err)
	}
	return nil
}
