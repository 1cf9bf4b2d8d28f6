package llm

import "strings"

const fence = "```"

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not to.
// The language tag is matched case-insensitively; text without a fence is
// returned trimmed and otherwise untouched.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, fence) {
		return text
	}

	text = strings.TrimPrefix(text, fence)
	if len(text) >= 4 && strings.EqualFold(text[:4], "json") {
		text = text[4:]
	} else if idx := strings.Index(text, "\n"); idx >= 0 {
		// Skip some other language identifier on the opening line
		firstLine := strings.TrimSpace(text[:idx])
		if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			text = text[idx+1:]
		}
	}

	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, fence)
	return strings.TrimSpace(text)
}
