package textnorm

import "unicode/utf8"

// Options selects the normalization steps. The zero value only applies the
// token budget, which is itself disabled when MaxTokens is zero.
type Options struct {
	ConvertHTML        bool
	ConvertMarkdown    bool
	CollapseWhitespace bool
	RemoveDuplicates   bool
	// MaxTokens is the token budget; zero disables truncation.
	MaxTokens int
	// CharsPerToken defaults to DefaultCharsPerToken.
	CharsPerToken int
}

// DefaultOptions enables HTML conversion, whitespace collapsing and
// duplicate removal without a token budget.
func DefaultOptions() Options {
	return Options{
		ConvertHTML:        true,
		CollapseWhitespace: true,
		RemoveDuplicates:   true,
	}
}

// Result is the normalized text plus size metadata.
type Result struct {
	Content          string `json:"content"`
	OriginalLength   int    `json:"original_length"`
	NormalizedLength int    `json:"normalized_length"`
	Truncated        bool   `json:"truncated"`
	EstimatedTokens  int    `json:"estimated_tokens"`
}

// Normalize runs, in order: HTML to text, Markdown to text, whitespace
// collapse, duplicate line removal and token budget truncation.
func Normalize(content string, opts Options) Result {
	res := Result{OriginalLength: utf8.RuneCountInString(content)}

	s := content
	if opts.ConvertHTML {
		s = HTMLToText(s)
	}
	if opts.ConvertMarkdown {
		s = MarkdownToText(s)
	}
	if opts.CollapseWhitespace {
		s = CollapseWhitespace(s)
	}
	if opts.RemoveDuplicates {
		s = RemoveDuplicateLines(s)
		if opts.CollapseWhitespace {
			// dropped lines can leave stacked blank lines behind
			s = CollapseWhitespace(s)
		}
	}

	truncated := TruncateToTokenBudget(s, opts.MaxTokens, opts.CharsPerToken)
	res.Truncated = truncated != s

	res.Content = truncated
	res.NormalizedLength = utf8.RuneCountInString(truncated)
	res.EstimatedTokens = EstimateTokens(truncated)
	return res
}
