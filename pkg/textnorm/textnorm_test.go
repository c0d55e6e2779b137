package textnorm_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/privacykit/pkg/textnorm"
)

func TestHTMLToText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "paragraphs become line breaks",
			input:    "<p>One</p><p>Two</p>",
			expected: "\nOne\n\nTwo\n",
		},
		{
			name:     "list items become bullets",
			input:    "<ul><li>A</li><li>B</li></ul>",
			expected: "\n• A\n\n• B\n",
		},
		{
			name:     "inline tags dropped",
			input:    `<span class="x">Hello <b>world</b></span>`,
			expected: "Hello world",
		},
		{
			name:     "named and numeric entities",
			input:    "Fish &amp; Chips &lt;3 &#65;&#x42; &nbsp;ok",
			expected: "Fish & Chips <3 AB  ok",
		},
		{
			name:     "double encoded entity decoded once",
			input:    "&amp;lt;",
			expected: "&lt;",
		},
		{
			name:     "unknown entity kept",
			input:    "&bogus;",
			expected: "&bogus;",
		},
		{
			name:     "pre is not a paragraph",
			input:    "<pre>x</pre>",
			expected: "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, textnorm.HTMLToText(tt.input))
		})
	}
}

func TestMarkdownToText(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"# Title",
		"",
		"Some **bold** and *italic* and `code` text.",
		"",
		"```go",
		"fmt.Println(1)",
		"```",
		"",
		"![logo](logo.png) see [our site](https://example.com)",
		"",
		"---",
		"",
		"> quoted line",
		"- first",
		"* second",
		"1. numbered",
	}, "\n")

	expected := strings.Join([]string{
		"Title",
		"",
		"Some bold and italic and code text.",
		"",
		"logo see our site",
		"",
		"quoted line",
		"• first",
		"• second",
		"numbered",
	}, "\n")

	assert.Equal(t, expected, textnorm.MarkdownToText(input))
}

func TestMarkdownToText_KeepsSnakeCase(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "use donor_id here", textnorm.MarkdownToText("use donor_id here"))
}

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "spaces squeezed",
			input:    "a    b\t\tc",
			expected: "a b c",
		},
		{
			name:     "paragraph breaks limited",
			input:    "a\n\n\n\n\nb",
			expected: "a\n\nb",
		},
		{
			name:     "lines trimmed",
			input:    "  a  \n   b   ",
			expected: "a\nb",
		},
		{
			name:     "whitespace-only lines collapse into a paragraph break",
			input:    "a\n  \n \t \n  \nb",
			expected: "a\n\nb",
		},
		{
			name:     "crlf",
			input:    "a\r\nb",
			expected: "a\nb",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, textnorm.CollapseWhitespace(tt.input))
		})
	}
}

func TestRemoveDuplicateLines(t *testing.T) {
	t.Parallel()

	input := "Header\n  Body  \n\nHeader\nBody\n\nFooter"
	assert.Equal(t, "Header\n  Body  \n\n\nFooter", textnorm.RemoveDuplicateLines(input))
}

func TestTruncateToTokenBudget(t *testing.T) {
	t.Parallel()

	t.Run("within budget unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "short", textnorm.TruncateToTokenBudget("short", 10, 4))
	})

	t.Run("disabled budget", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("x", 100)
		assert.Equal(t, long, textnorm.TruncateToTokenBudget(long, 0, 4))
	})

	t.Run("cuts at sentence end when enough is kept", func(t *testing.T) {
		t.Parallel()
		// window is 20 runes: "aaaaaaaaaaaaaaaaa. b" -> period at index 17
		text := strings.Repeat("a", 17) + ". bbbbbbbbbbbb"
		got := textnorm.TruncateToTokenBudget(text, 5, 4)
		assert.Equal(t, strings.Repeat("a", 17)+"."+textnorm.SoftTruncationSuffix, got)
	})

	t.Run("cuts at newline", func(t *testing.T) {
		t.Parallel()
		text := strings.Repeat("a", 18) + "\nbbbbbbbbbbbb"
		got := textnorm.TruncateToTokenBudget(text, 5, 4)
		assert.Equal(t, strings.Repeat("a", 18)+"\n"+textnorm.SoftTruncationSuffix, got)
	})

	t.Run("hard cut when boundary is too early", func(t *testing.T) {
		t.Parallel()
		text := "aa. " + strings.Repeat("b", 40)
		got := textnorm.TruncateToTokenBudget(text, 5, 4)
		assert.Equal(t, "aa. "+strings.Repeat("b", 16)+textnorm.HardTruncationSuffix, got)
	})

	t.Run("default chars per token", func(t *testing.T) {
		t.Parallel()
		text := strings.Repeat("z", 50)
		got := textnorm.TruncateToTokenBudget(text, 10, 0)
		assert.Equal(t, strings.Repeat("z", 40)+textnorm.HardTruncationSuffix, got)
	})

	t.Run("huge budget leaves text unchanged", func(t *testing.T) {
		t.Parallel()
		for _, budget := range []int{math.MaxInt / 4, math.MaxInt/4 + 1, math.MaxInt/2 + 1, math.MaxInt} {
			assert.NotPanics(t, func() {
				assert.Equal(t, "hello world", textnorm.TruncateToTokenBudget("hello world", budget, 4))
			})
		}
		assert.Equal(t, "hello world", textnorm.TruncateToTokenBudget("hello world", math.MaxInt, 0))
	})

	t.Run("multibyte runes are never split", func(t *testing.T) {
		t.Parallel()
		text := strings.Repeat("é", 30)
		got := textnorm.TruncateToTokenBudget(text, 2, 4)
		assert.Equal(t, strings.Repeat("é", 8)+textnorm.HardTruncationSuffix, got)
	})
}

func TestNormalizeUnicode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ignore", textnorm.NormalizeUnicode("ｉｇｎｏｒｅ"))
	assert.Equal(t, "ignore", textnorm.NormalizeUnicode("ig\u200bnore"))
	assert.Equal(t, "a\nb\tc", textnorm.NormalizeUnicode("a\nb\tc\x00"))
}

func TestEstimateTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, textnorm.EstimateTokens(""))
	assert.Equal(t, 1, textnorm.EstimateTokens("abc"))
	assert.Equal(t, 1, textnorm.EstimateTokens("abcd"))
	assert.Equal(t, 2, textnorm.EstimateTokens("abcde"))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("full pipeline", func(t *testing.T) {
		t.Parallel()

		html := "<h1>Gala</h1><p>Join   us</p><p>Join us</p><div>Thanks</div>"
		res := textnorm.Normalize(html, textnorm.DefaultOptions())

		assert.Equal(t, "Gala\n\nJoin us\n\nThanks", res.Content)
		assert.Equal(t, len(html), res.OriginalLength)
		assert.Equal(t, len(res.Content), res.NormalizedLength)
		assert.False(t, res.Truncated)
		assert.Equal(t, textnorm.EstimateTokens(res.Content), res.EstimatedTokens)
	})

	t.Run("truncation reported", func(t *testing.T) {
		t.Parallel()

		res := textnorm.Normalize(strings.Repeat("word ", 100), textnorm.Options{
			CollapseWhitespace: true,
			MaxTokens:          10,
		})
		assert.True(t, res.Truncated)
		assert.True(t, strings.HasSuffix(res.Content, textnorm.HardTruncationSuffix))
	})

	t.Run("zero options is identity", func(t *testing.T) {
		t.Parallel()

		res := textnorm.Normalize("  <b>x</b>  ", textnorm.Options{})
		assert.Equal(t, "  <b>x</b>  ", res.Content)
		assert.False(t, res.Truncated)
	})
}
