package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderEmptyInput(t *testing.T) {
	assert.Equal(t, "", Render(""))
}

func TestRenderHeadings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"h1", "# Hello", "<h1>Hello</h1>"},
		{"h2", "## Hello", "<h2>Hello</h2>"},
		{"h3", "### Hello", "<h3>Hello</h3>"},
		{"h4 unsupported", "#### Hello", "<p>#### Hello</p>"},
		{"no space after hash", "#Hello", "<p>#Hello</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.input))
		})
	}
}

func TestRenderHeadingThenParagraph(t *testing.T) {
	// No leading empty paragraph before the heading.
	assert.Equal(t, "<h1>Hello</h1><p>World</p>", Render("# Hello\n\nWorld"))
}

func TestRenderEmphasis(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bold italic", "***x***", "<p><strong><em>x</em></strong></p>"},
		{"bold", "**x**", "<p><strong>x</strong></p>"},
		{"italic", "*x*", "<p><em>x</em></p>"},
		{"mixed", "a **b** and *c*", "<p>a <strong>b</strong> and <em>c</em></p>"},
		{"unmatched stays literal", "5 * 3 equals 15", "<p>5 * 3 equals 15</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.input))
		})
	}
}

func TestRenderBlockquoteMerging(t *testing.T) {
	got := Render("> first\n> second")
	assert.Equal(t, "<blockquote>first<br>second</blockquote>", got)

	// A blank line splits quote runs.
	got = Render("> first\n\n> second")
	assert.Equal(t, "<blockquote>first</blockquote><blockquote>second</blockquote>", got)
}

func TestRenderListMerging(t *testing.T) {
	// Both markers fold into one unordered list.
	got := Render("- one\n* two\n- three")
	assert.Equal(t, "<ul><li>one</li><li>two</li><li>three</li></ul>", got)
}

func TestRenderHorizontalRule(t *testing.T) {
	assert.Equal(t, "<p>above</p><hr><p>below</p>", Render("above\n\n---\n\nbelow"))
}

func TestRenderParagraphFolding(t *testing.T) {
	// Single newline is a soft break, double newline a new paragraph.
	assert.Equal(t, "<p>a<br>b</p>", Render("a\nb"))
	assert.Equal(t, "<p>a</p><p>b</p>", Render("a\n\nb"))
}

func TestRenderEscapesRawHTML(t *testing.T) {
	inputs := []string{
		"<script>alert('xss')</script>",
		"hello <img src=x onerror=alert(1)> world",
		"# <script>alert(1)</script>",
		"> <iframe src='javascript:alert(1)'></iframe>",
		"click <a href=\"javascript:alert(1)\">here</a>",
	}

	for _, input := range inputs {
		out := Render(input)
		assert.NotContains(t, out, "<script", "input: %s", input)
		assert.NotContains(t, out, "<img", "input: %s", input)
		assert.NotContains(t, out, "<iframe", "input: %s", input)
		assert.NotContains(t, out, "<a ", "input: %s", input)
	}
}

func TestRenderOutputHasNoAttributes(t *testing.T) {
	// Every tag in the output must be a bare allow-listed one, so no
	// attribute (on*=, href=javascript:) can ever be executable.
	out := Render("hello <img src=x onerror=alert(1)> world\n\n**bold** <p class=\"x\">p</p>")
	for _, tag := range tagRe.FindAllString(out, -1) {
		assert.Regexp(t, allowedRe, tag)
	}
}

func TestRenderEscapesAmpersand(t *testing.T) {
	assert.Equal(t, "<p>salt &amp; pepper</p>", Render("salt & pepper"))
}

func TestSanitizeAllowList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"allowed tag kept", "<p>hi</p>", "<p>hi</p>"},
		{"disallowed tag escaped", "<div>hi</div>", "&lt;div&gt;hi&lt;/div&gt;"},
		{"attributes rejected", `<p onclick="x()">hi</p>`, "&lt;p onclick=\"x()\"&gt;hi</p>"},
		{"unterminated tag escaped", "<scr", "&lt;scr"},
		{"uppercase rejected", "<P>hi</P>", "&lt;P&gt;hi&lt;/P&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize(tt.input))
		})
	}
}

func TestRenderLongDocument(t *testing.T) {
	input := strings.Join([]string{
		"# Title",
		"",
		"Intro with **bold**.",
		"",
		"> a quote",
		"> continued",
		"",
		"- first",
		"- second",
		"",
		"---",
		"",
		"The end.",
	}, "\n")

	want := "<h1>Title</h1>" +
		"<p>Intro with <strong>bold</strong>.</p>" +
		"<blockquote>a quote<br>continued</blockquote>" +
		"<ul><li>first</li><li>second</li></ul>" +
		"<hr>" +
		"<p>The end.</p>"

	assert.Equal(t, want, Render(input))
}
