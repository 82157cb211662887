// Package markdown converts raw author text into sanitized HTML and
// derives plain-text excerpts. Everything here is pure: no state, no
// I/O, safe to call from any goroutine.
package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// Supported constructs, in precedence order:
// escaping, headings 1-3, emphasis (*** before ** before *), blockquotes,
// unordered lists, horizontal rules, paragraph/line-break folding, and a
// final allow-list pass over the assembled markup.

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockQuote
	blockList
	blockRule
)

type block struct {
	kind  blockKind
	level int // heading level 1-3
	lines []string
}

var (
	boldItalicRe = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	boldRe       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe     = regexp.MustCompile(`\*(.+?)\*`)

	// The final sanitization pass only lets bare, attribute-free tags
	// from this set through. Everything else is escaped.
	tagRe     = regexp.MustCompile(`<[^>]*>?`)
	allowedRe = regexp.MustCompile(`^</?(h1|h2|h3|p|br|strong|em|blockquote|ul|li|hr)>$`)
)

// Render converts raw markdown source into safe HTML. Invalid syntax
// degrades to literal text; Render never fails.
func Render(raw string) string {
	if raw == "" {
		return ""
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	blocks := classify(strings.Split(text, "\n"))

	var b strings.Builder
	for _, blk := range blocks {
		b.WriteString(renderBlock(blk))
	}

	return sanitize(b.String())
}

// classify walks the source line by line and groups it into blocks.
// Consecutive quote lines form one quote block, consecutive list lines
// one list block; a blank line closes whatever run is open.
func classify(lines []string) []block {
	var blocks []block
	var cur *block

	open := func(b block) {
		blocks = append(blocks, b)
		cur = &blocks[len(blocks)-1]
	}
	closed := func(b block) {
		blocks = append(blocks, b)
		cur = nil
	}

	for _, line := range lines {
		switch {
		case strings.TrimSpace(line) == "":
			cur = nil

		case line == "---":
			closed(block{kind: blockRule})

		case strings.HasPrefix(line, "### "):
			closed(block{kind: blockHeading, level: 3, lines: []string{line[4:]}})

		case strings.HasPrefix(line, "## "):
			closed(block{kind: blockHeading, level: 2, lines: []string{line[3:]}})

		case strings.HasPrefix(line, "# "):
			closed(block{kind: blockHeading, level: 1, lines: []string{line[2:]}})

		case strings.HasPrefix(line, "> "):
			if cur != nil && cur.kind == blockQuote {
				cur.lines = append(cur.lines, line[2:])
			} else {
				open(block{kind: blockQuote, lines: []string{line[2:]}})
			}

		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			if cur != nil && cur.kind == blockList {
				cur.lines = append(cur.lines, line[2:])
			} else {
				open(block{kind: blockList, lines: []string{line[2:]}})
			}

		default:
			if cur != nil && cur.kind == blockParagraph {
				cur.lines = append(cur.lines, line)
			} else {
				open(block{kind: blockParagraph, lines: []string{line}})
			}
		}
	}

	return blocks
}

func renderBlock(b block) string {
	switch b.kind {
	case blockRule:
		return "<hr>"

	case blockHeading:
		text := inline(escapeText(b.lines[0]))
		return fmt.Sprintf("<h%d>%s</h%d>", b.level, text, b.level)

	case blockQuote:
		return "<blockquote>" + joinInline(b.lines) + "</blockquote>"

	case blockList:
		var sb strings.Builder
		sb.WriteString("<ul>")
		for _, line := range b.lines {
			sb.WriteString("<li>")
			sb.WriteString(inline(escapeText(line)))
			sb.WriteString("</li>")
		}
		sb.WriteString("</ul>")
		return sb.String()

	default:
		body := joinInline(b.lines)
		if body == "" {
			return ""
		}
		return "<p>" + body + "</p>"
	}
}

// joinInline renders each line and folds single newlines into <br>.
func joinInline(lines []string) string {
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = inline(escapeText(line))
	}
	return strings.Join(rendered, "<br>")
}

// inline applies emphasis spans. Triple asterisks must match before
// double before single, otherwise a greedy double-asterisk pass would
// swallow the triple spans. Unmatched markers stay literal.
func inline(text string) string {
	text = boldItalicRe.ReplaceAllString(text, "<strong><em>$1</em></strong>")
	text = boldRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicRe.ReplaceAllString(text, "<em>$1</em>")
	return text
}

// escapeText must run before any tag synthesis so authored HTML can
// never reach the output as markup. Ampersand first.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// sanitize is the authoritative XSS defense: it runs over the assembled
// markup regardless of how it was produced and escapes every tag that
// is not a bare allow-listed one. No attributes survive.
func sanitize(html string) string {
	return tagRe.ReplaceAllStringFunc(html, func(tag string) string {
		if allowedRe.MatchString(tag) {
			return tag
		}
		tag = strings.ReplaceAll(tag, "<", "&lt;")
		return strings.ReplaceAll(tag, ">", "&gt;")
	})
}
