package logger

import (
	"log/slog"

	"github.com/dmitrymomot/privacykit/pkg/logmask"
	"github.com/dmitrymomot/privacykit/pkg/pii"
)

type replaceFunc func(groups []string, a slog.Attr) slog.Attr

// redactAttr chains next with key masking and PII scrubbing. It returns next
// unchanged when neither is enabled.
func redactAttr(next replaceFunc, masker *logmask.Masker, scrubPII bool) replaceFunc {
	if masker == nil && !scrubPII {
		return next
	}

	return func(groups []string, a slog.Attr) slog.Attr {
		if next != nil {
			a = next(groups, a)
		}
		if a.Equal(slog.Attr{}) {
			return a
		}

		// built-in keys such as time, level and source are never masked by
		// name; the message can still carry PII
		builtin := len(groups) == 0 && isBuiltinKey(a.Key)

		if masker != nil && !builtin {
			if masker.IsSensitiveKey(a.Key) || sensitiveGroup(masker, groups) {
				return slog.String(a.Key, logmask.Redacted)
			}
			if a.Value.Kind() == slog.KindAny {
				a.Value = slog.AnyValue(masker.Any(a.Value.Any()))
			}
		}

		if scrubPII && a.Value.Kind() == slog.KindString {
			if builtin && a.Key != slog.MessageKey {
				return a
			}
			if s := a.Value.String(); pii.Contains(s) {
				a.Value = slog.StringValue(pii.Redact(s))
			}
		}
		return a
	}
}

func isBuiltinKey(key string) bool {
	switch key {
	case slog.TimeKey, slog.LevelKey, slog.MessageKey, slog.SourceKey:
		return true
	}
	return false
}

func sensitiveGroup(masker *logmask.Masker, groups []string) bool {
	for _, g := range groups {
		if masker.IsSensitiveKey(g) {
			return true
		}
	}
	return false
}
