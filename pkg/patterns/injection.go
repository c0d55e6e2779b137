package patterns

import "regexp"

// InjectionPattern is a case-insensitive phrase or structural marker that
// signals an attempt to override the instructions of a downstream model.
type InjectionPattern struct {
	Description string
	Regexp      *regexp.Regexp
}

// NewInjectionPattern compiles expr case-insensitively.
func NewInjectionPattern(description, expr string) (InjectionPattern, error) {
	re, err := regexp.Compile(`(?i)` + expr)
	if err != nil {
		return InjectionPattern{}, err
	}
	return InjectionPattern{Description: description, Regexp: re}, nil
}

func mustInjection(description, expr string) InjectionPattern {
	p, err := NewInjectionPattern(description, expr)
	if err != nil {
		panic(err)
	}
	return p
}

var injectionPatterns = []InjectionPattern{
	mustInjection("ignore previous instructions",
		`\bignore\s+(?:all\s+)?(?:of\s+)?(?:the\s+|your\s+)?(?:previous|prior|above|earlier|preceding)\s+(?:instructions?|prompts?|rules|directions|context)`),
	mustInjection("disregard instructions",
		`\bdisregard\s+(?:all\s+)?(?:the\s+|your\s+|any\s+)?(?:previous|prior|above|safety|security|system)\b(?:\s+(?:instructions?|rules|guidelines|prompts?|policies))?`),
	mustInjection("forget everything",
		`\bforget\s+(?:everything|all\s+(?:previous\s+)?(?:instructions?|rules)|your\s+(?:instructions?|rules|guidelines|training))`),
	mustInjection("role impersonation",
		`\byou\s+are\s+now\s+(?:(?:a|an|the|in)\s+)?[\w-]+`),
	mustInjection("persona switch",
		`\bfrom\s+now\s+on,?\s+you\s+(?:are|will|must|should)\b`),
	mustInjection("new instructions",
		`\bnew\s+instructions?\s*:`),
	mustInjection("system role marker",
		`\bsystem\s*:`),
	mustInjection("assistant role marker",
		`\bassistant\s*:`),
	mustInjection("instruction block marker",
		`\[/?INST\]`),
	mustInjection("system block marker",
		`<</?SYS>>`),
	mustInjection("chat template token",
		`<\|?(?:im_start|im_end|system)\|?>`),
	mustInjection("jailbreak",
		`\bjailbreak(?:s|ing|ed)?\b`),
}

// Injection returns the ordered built-in injection pattern set.
func Injection() []InjectionPattern {
	out := make([]InjectionPattern, len(injectionPatterns))
	copy(out, injectionPatterns)
	return out
}

// InjectionMarker replaces every injection match.
const InjectionMarker = "[user instruction redacted]"
