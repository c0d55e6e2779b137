// Package textnorm turns rich content into compact plain text suitable for a
// prompt: HTML and Markdown conversion, whitespace collapsing, duplicate line
// removal, Unicode folding and truncation to an approximate token budget.
//
// Every function is a pure string transform. Lengths are counted in runes.
//
// # Usage
//
//	res := textnorm.Normalize(page, textnorm.Options{
//	    ConvertHTML:        true,
//	    CollapseWhitespace: true,
//	    RemoveDuplicates:   true,
//	    MaxTokens:          2000,
//	})
//	prompt := res.Content
//
// Truncation prefers to cut at the last sentence or line end inside the
// budget window as long as at least 80% of the window is kept; otherwise it
// cuts hard and marks the cut.
package textnorm
