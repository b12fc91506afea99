package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToText(t *testing.T) {
	got := MarkdownToText("**Harika** bir [film](https://example.com/f) izledik")

	assert.Equal(t, "Harika bir film izledik", got)
}

func TestMarkdownToTextCollapsesWhitespace(t *testing.T) {
	got := MarkdownToText("harika\n\nbir   deneyim")

	assert.Equal(t, "harika bir deneyim", got)
}

func TestStripLinks(t *testing.T) {
	got := StripLinks("bak www.example.com ve https://example.com/x harika")

	assert.NotContains(t, got, "www.example.com")
	assert.NotContains(t, got, "https://example.com/x")
	assert.Contains(t, got, "harika")
}

func TestStripLinksKeepsAnchorText(t *testing.T) {
	got := StripLinks("[çok güzel](https://example.com) bir yazı")

	assert.Equal(t, "çok güzel bir yazı", got)
}
