// Package extract pulls structured stage records out of free-form agent
// text. Agents are instructed to emit commentary followed by a trailing
// JSON object, so the last brace-delimited candidate wins over earlier
// ones (which are often echoed examples from the agent's reasoning).
package extract

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/coverwise/advisor-agent/agent/contract"
)

// Record extracts the last well-formed brace-delimited object from text and
// deserializes it into T. Candidates are tried last-to-first; the error is
// always contract.ErrExtraction so callers can substitute stage defaults
// without inspecting the cause.
func Record[T any](text string) (T, error) {
	var out T

	spans := objectSpans(text)
	if len(spans) == 0 {
		return out, fmt.Errorf("%w: no object literal in text", contract.ErrExtraction)
	}

	for i := len(spans) - 1; i >= 0; i-- {
		candidate := spans[i]
		if !gjson.Valid(candidate) {
			continue
		}
		var v T
		if err := json.Unmarshal([]byte(candidate), &v); err != nil {
			continue
		}
		return v, nil
	}

	return out, fmt.Errorf("%w: no candidate parsed", contract.ErrExtraction)
}

// objectSpans returns every top-level {...} span in text, in order. The
// scan is string-aware so braces inside JSON string values do not open or
// close spans.
func objectSpans(text string) []string {
	var spans []string

	depth := 0
	start := -1
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				spans = append(spans, text[start:i+1])
				start = -1
			}
		}
	}

	return spans
}
