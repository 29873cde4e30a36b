package llm

import "strings"

// CleanJSONBlock returns the JSON value inside a model response. It strips
// markdown code fences and any prose before or after the first complete
// object or array.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.ContainsAny(firstLine, "{[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	var value string
	if text[start] == '{' {
		value = extractJSONObject(text[start:])
	} else {
		value = extractJSONArray(text[start:])
	}
	if value == "" {
		return text
	}
	return value
}

// extractJSONObject returns the balanced object at the start of s.
func extractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

// extractJSONArray returns the balanced array at the start of s.
func extractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

// extractBalanced scans from an opening delimiter to its matching close,
// ignoring delimiters inside JSON strings. It returns "" when s does not
// start with open or is unbalanced.
func extractBalanced(s string, open, close byte) string {
	if len(s) == 0 || s[0] != open {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
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
				return s[:i+1]
			}
		}
	}
	return ""
}
