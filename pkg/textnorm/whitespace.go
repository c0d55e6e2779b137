package textnorm

import (
	"regexp"
	"strings"
)

var (
	spaceRunRegex   = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankLinesRegex = regexp.MustCompile(`\n{3,}`)
)

// CollapseWhitespace squeezes runs of spaces into one, trims every line,
// limits consecutive line breaks to a single blank line and trims the result.
func CollapseWhitespace(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = spaceRunRegex.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")

	s = blankLinesRegex.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// RemoveDuplicateLines drops every line whose trimmed text already appeared
// earlier. The first occurrence is kept verbatim. Blank lines are never
// treated as duplicates so paragraph breaks survive.
func RemoveDuplicateLines(s string) string {
	if s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	seen := make(map[string]struct{}, len(lines))
	kept := lines[:0]
	for _, line := range lines {
		key := strings.TrimSpace(line)
		if key != "" {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
