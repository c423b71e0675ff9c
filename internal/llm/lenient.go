package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The generative capability returns prose around its JSON more often
// than not. These helpers locate the first well-formed bracket-delimited
// substring instead of trusting the whole response body.

// FirstJSONObject returns the first balanced {...} substring of s that
// parses as JSON, stripping markdown fences first.
func FirstJSONObject(s string) ([]byte, error) {
	return firstBalanced(stripFences(s), '{', '}')
}

// FirstJSONArray returns the first balanced [...] substring of s that
// parses as JSON, stripping markdown fences first.
func FirstJSONArray(s string) ([]byte, error) {
	return firstBalanced(stripFences(s), '[', ']')
}

// DecodeObject scrapes the first JSON object out of s and unmarshals it
// into out.
func DecodeObject(s string, out any) error {
	raw, err := FirstJSONObject(s)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// DecodeArray scrapes the first JSON array out of s and unmarshals it
// into out.
func DecodeArray(s string, out any) error {
	raw, err := FirstJSONArray(s)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// firstBalanced scans for open, tracks nesting depth while skipping
// string literals, and returns the shortest balanced candidate that
// json.Valid accepts. Unbalanced or invalid content is an error, never
// a panic: callers degrade to an empty result.
func firstBalanced(s string, open, close byte) ([]byte, error) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return nil, fmt.Errorf("no %q found in response", string(open))
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				raw := []byte(s[start : i+1])
				if !json.Valid(raw) {
					return nil, fmt.Errorf("balanced %q substring is not valid JSON", string(open))
				}
				return raw, nil
			}
		}
	}
	return nil, fmt.Errorf("unbalanced %q in response", string(open))
}
