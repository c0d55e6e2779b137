package sanitizer

import "regexp"

// Pre-compiled regular expressions for performance
var (
	// Blunt HTML stripping
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

	// Paired and unterminated script/style blocks
	scriptBlockRegex    = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	styleBlockRegex     = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`)
	openScriptTailRegex = regexp.MustCompile(`(?is)<script\b.*$`)
	openStyleTailRegex  = regexp.MustCompile(`(?is)<style\b.*$`)

	// Residue in decoded text nodes
	tagResidueRegex  = regexp.MustCompile(`(?i)</?[a-z][a-z0-9:-]*(?:\s[^<>]*)?/?>`)
	scriptURIRegex   = regexp.MustCompile(`(?i)(?:java|vb)script\s*:`)
	cssExpressionRgx = regexp.MustCompile(`(?i)expression\s*\(`)

	// Script vectors in attribute names or values of kept elements
	attrVectorRegex = regexp.MustCompile(`(?i)script|expression\s*\(|\bon(?:load|unload|click|dblclick|error|abort|focus|blur|change|submit|reset|input|select|toggle|begin|end|key[a-z]+|mouse[a-z]+|pointer[a-z]+|touch[a-z]+|animation[a-z]+|transition[a-z]+)\b`)
)
