package perplexity

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)
	jsonFenceRe  = regexp.MustCompile("(?s)```json\\s*(.*?)```")
	codeFenceRe  = regexp.MustCompile("(?s)```\\s*(.*?)```")
)

// ExtractJSON pulls the first JSON document out of a model response.
// Reasoning models wrap answers in <think> blocks and markdown fences; this
// works through the layers in order and validates every candidate by parsing
// before accepting it. The final return reports whether anything parseable
// was found.
func ExtractJSON(raw string) (string, bool) {
	text := strings.TrimSpace(thinkBlockRe.ReplaceAllString(raw, ""))
	if text == "" {
		return "", false
	}

	// Whole response is already JSON.
	if candidate := strings.TrimSpace(text); json.Valid([]byte(candidate)) {
		return candidate, true
	}

	// ```json fenced block.
	if m := jsonFenceRe.FindStringSubmatch(text); m != nil {
		if candidate := strings.TrimSpace(m[1]); json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}

	// Any fenced block.
	if m := codeFenceRe.FindStringSubmatch(text); m != nil {
		if candidate := strings.TrimSpace(m[1]); json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}

	// Balanced scan from each opening brace or bracket.
	if candidate, ok := scanBalanced(text); ok {
		return candidate, true
	}

	// Last resort: take everything from the first opener and hope a
	// trailing trim fixes it.
	for _, opener := range []string{"{", "["} {
		start := strings.Index(text, opener)
		if start < 0 {
			continue
		}
		candidate := strings.TrimSpace(text[start:])
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}

	return "", false
}

// scanBalanced walks the text tracking brace/bracket depth and string state,
// returning the first balanced region that parses as JSON.
func scanBalanced(text string) (string, bool) {
	for start := 0; start < len(text); start++ {
		open := text[start]
		if open != '{' && open != '[' {
			continue
		}
		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(text); i++ {
			ch := text[i]
			if escaped {
				escaped = false
				continue
			}
			switch ch {
			case '\\':
				if inString {
					escaped = true
				}
			case '"':
				inString = !inString
			case '{', '[':
				if !inString {
					depth++
				}
			case '}', ']':
				if !inString {
					depth--
					if depth == 0 {
						candidate := text[start : i+1]
						if json.Valid([]byte(candidate)) {
							return candidate, true
						}
						// Balanced but unparseable; try the next opener.
						i = len(text)
					}
				}
			}
		}
	}
	return "", false
}
