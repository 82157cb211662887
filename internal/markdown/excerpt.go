package markdown

import (
	"regexp"
	"strings"
)

// DefaultExcerptLength is the stored excerpt cap, in runes.
const DefaultExcerptLength = 150

var (
	headingSyntax = regexp.MustCompile(`#{1,6}\s`)
	boldSyntax    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicSyntax  = regexp.MustCompile(`\*([^*]+)\*`)
	quoteSyntax   = regexp.MustCompile(`>\s`)
	listSyntax    = regexp.MustCompile(`[-*]\s`)
)

// Excerpt strips markdown syntax from content, trims whitespace and
// truncates to maxLen runes, appending an ellipsis marker when the
// stripped text was longer. Idempotent on already-plain text: an
// excerpt contains no syntax left to strip.
func Excerpt(content string, maxLen int) string {
	plain := headingSyntax.ReplaceAllString(content, "")
	plain = boldSyntax.ReplaceAllString(plain, "$1")
	plain = italicSyntax.ReplaceAllString(plain, "$1")
	plain = quoteSyntax.ReplaceAllString(plain, "")
	plain = listSyntax.ReplaceAllString(plain, "")
	plain = strings.TrimSpace(plain)

	runes := []rune(plain)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return plain
}
