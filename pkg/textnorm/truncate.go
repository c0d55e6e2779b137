package textnorm

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultCharsPerToken approximates the size of one model token.
	DefaultCharsPerToken = 4

	// SoftTruncationSuffix marks a cut at a sentence or line boundary.
	SoftTruncationSuffix = "\n\n[Content truncated]"
	// HardTruncationSuffix marks a cut in the middle of the text.
	HardTruncationSuffix = "... [truncated]"

	minKeptRatio = 0.8
)

// EstimateTokens returns ceil(runes/4).
func EstimateTokens(s string) int {
	n := utf8.RuneCountInString(s)
	return (n + DefaultCharsPerToken - 1) / DefaultCharsPerToken
}

// TruncateToTokenBudget cuts text to maxTokens*charsPerToken runes. A non
// positive charsPerToken falls back to DefaultCharsPerToken; a non positive
// maxTokens disables the budget.
func TruncateToTokenBudget(text string, maxTokens, charsPerToken int) string {
	if maxTokens <= 0 {
		return text
	}
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}

	// no string can exceed a budget this large
	if maxTokens > math.MaxInt/charsPerToken {
		return text
	}

	limit := maxTokens * charsPerToken
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	window := string([]rune(text)[:limit])
	cut := max(strings.LastIndexByte(window, '.'), strings.LastIndexByte(window, '\n'))
	if cut >= 0 && float64(utf8.RuneCountInString(window[:cut])) >= float64(limit)*minKeptRatio {
		return window[:cut+1] + SoftTruncationSuffix
	}
	return window + HardTruncationSuffix
}
