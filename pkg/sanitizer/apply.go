package sanitizer

import "regexp"

// Apply runs value through transforms in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	result := value

	for _, transform := range transforms {
		result = transform(result)
	}

	return result
}

// Compose creates a reusable pipeline from transforms.
// Preferred over repeated Apply calls when the same chain runs on every request.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}

// remove returns a transform deleting every match of re.
func remove(re *regexp.Regexp) func(string) string {
	return func(s string) string {
		return re.ReplaceAllLiteralString(s, "")
	}
}

// stripTagsBluntly removes script and style blocks, paired or left open at
// the end of input, then every remaining tag.
var stripTagsBluntly = Compose(
	remove(scriptBlockRegex),
	remove(styleBlockRegex),
	remove(openScriptTailRegex),
	remove(openStyleTailRegex),
	remove(htmlTagRegex),
)
