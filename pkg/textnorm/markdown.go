package textnorm

import "regexp"

var (
	mdFenceRegex      = regexp.MustCompile("(?s)(?:```|~~~).*?(?:```|~~~)")
	mdInlineCodeRegex = regexp.MustCompile("`([^`\n]*)`")
	mdImageRegex      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLinkRegex       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	mdHeadingRegex    = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]+`)
	mdBoldStarRegex   = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
	mdBoldUnderRegex  = regexp.MustCompile(`__([^_\n]+)__`)
	mdItalStarRegex   = regexp.MustCompile(`\*([^*\s][^*\n]*)\*`)
	mdItalUnderRegex  = regexp.MustCompile(`\b_([^_\n]+)_\b`)
	mdRuleRegex       = regexp.MustCompile(`(?m)^[ \t]*(?:[-*_][ \t]*){3,}$`)
	mdQuoteRegex      = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	mdBulletRegex     = regexp.MustCompile(`(?m)^([ \t]*)[-*+][ \t]+`)
	mdOrderedRegex    = regexp.MustCompile(`(?m)^([ \t]*)\d+[.)][ \t]+`)
)

// MarkdownToText strips Markdown syntax. Fenced code blocks are dropped,
// inline code keeps its text, images become their alt text and links their
// label. Unordered list markers become bullets and ordered numbering is
// removed.
func MarkdownToText(s string) string {
	if s == "" {
		return s
	}
	s = mdFenceRegex.ReplaceAllString(s, "")
	s = mdInlineCodeRegex.ReplaceAllString(s, "$1")
	s = mdImageRegex.ReplaceAllString(s, "$1")
	s = mdLinkRegex.ReplaceAllString(s, "$1")
	s = mdHeadingRegex.ReplaceAllString(s, "")
	s = mdBoldStarRegex.ReplaceAllString(s, "$1")
	s = mdBoldUnderRegex.ReplaceAllString(s, "$1")
	s = mdItalStarRegex.ReplaceAllString(s, "$1")
	s = mdItalUnderRegex.ReplaceAllString(s, "$1")
	s = mdRuleRegex.ReplaceAllString(s, "")
	s = mdQuoteRegex.ReplaceAllString(s, "")
	s = mdBulletRegex.ReplaceAllString(s, "${1}• ")
	s = mdOrderedRegex.ReplaceAllString(s, "$1")
	return CollapseWhitespace(s)
}
