package enrichment

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	errNoArray    = errors.New("no JSON array in response")
	errEmptyArray = errors.New("JSON array has no actions")
)

// findBracketedArray returns the first balanced [...] substring of text.
// Brackets inside JSON string literals are ignored.
func findBracketedArray(text string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		if start < 0 {
			if c == '[' {
				start = i
				depth = 1
			}
			continue
		}

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// parseActions extracts the action list the model was asked to produce.
func parseActions(text string) ([]string, error) {
	raw, ok := findBracketedArray(text)
	if !ok {
		return nil, errNoArray
	}
	var actions []string
	if err := json.Unmarshal([]byte(raw), &actions); err != nil {
		return nil, fmt.Errorf("decoding actions: %w", err)
	}
	if len(actions) == 0 {
		return nil, errEmptyArray
	}
	return actions, nil
}
