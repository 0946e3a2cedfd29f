package linkpreview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDecodeEntities(t *testing.T) {
	assert.Equal(t, "A & B", DecodeEntities("A &amp; B"))
	assert.Equal(t, "it's <b>", DecodeEntities("it&#39;s &lt;b&gt;"))
	assert.Equal(t, "plain", DecodeEntities("plain"))
}

func TestSanitizeTextStripsEscapes(t *testing.T) {
	assert.Equal(t, "red title", sanitizeText("\x1b[31mred\x1b[0m title"))
}

func TestLinkify(t *testing.T) {
	segs := Linkify("read https://example.com/a?b=c now")

	assert.Equal(t, []Segment{
		{Text: "read "},
		{Text: "https://example.com/a?b=c", Href: "https://example.com/a?b=c"},
		{Text: " now"},
	}, segs)

	assert.Nil(t, Linkify(""))
	assert.Equal(t, []Segment{{Text: "no links here"}}, Linkify("no links here"))
}

// Linkify never loses or reorders text
func TestLinkifyRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOf(rapid.SampledFrom([]string{
			"hello ", "https://example.com/x", " and ", "www.", "ftp://a.b/c", "é ", "\n",
		})).Draw(t, "parts")

		text := ""
		for _, p := range parts {
			text += p
		}

		if got := PlainText(Linkify(text)); got != text {
			t.Fatalf("PlainText(Linkify(%q)) = %q", text, got)
		}
	})
}
