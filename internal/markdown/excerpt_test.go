package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerptStripsMarkdown(t *testing.T) {
	content := "# Title\n**bold** and *italic*\n> quoted\n- item"
	want := "Title\nbold and italic\nquoted\nitem"
	assert.Equal(t, want, Excerpt(content, DefaultExcerptLength))
}

func TestExcerptTruncation(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := Excerpt(long, 150)

	assert.Len(t, []rune(got), 153)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestExcerptExactLengthNotTruncated(t *testing.T) {
	exact := strings.Repeat("b", 150)
	got := Excerpt(exact, 150)

	assert.Equal(t, exact, got)
	assert.False(t, strings.HasSuffix(got, "..."))
}

func TestExcerptCountsRunesNotBytes(t *testing.T) {
	long := strings.Repeat("é", 200)
	got := Excerpt(long, 150)
	assert.Len(t, []rune(got), 153)
}

func TestExcerptIdempotent(t *testing.T) {
	contents := []string{
		"## A heading\nwith **emphasis** and a\n> quote",
		"plain prose, nothing to strip",
		"- one\n- two\n- three",
	}

	for _, content := range contents {
		once := Excerpt(content, 150)
		twice := Excerpt(once, 150)
		assert.Equal(t, once, twice, "content: %s", content)
	}
}

func TestExcerptTrimsWhitespace(t *testing.T) {
	assert.Equal(t, "hello", Excerpt("  \n hello \n ", 150))
}

func TestExcerptEmptyContent(t *testing.T) {
	assert.Equal(t, "", Excerpt("", 150))
}
