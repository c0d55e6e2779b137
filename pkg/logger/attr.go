package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Category records the allowlist category under the key "category".
func Category[T ~string](c T) slog.Attr {
	return slog.String("category", string(c))
}

// Reason records a rejection reason under the key "reason".
// An empty reason yields an empty Attr.
func Reason[T ~string](r T) slog.Attr {
	if r == "" {
		return slog.Attr{}
	}
	return slog.String("reason", string(r))
}

// AuditID records the audit identifier of a validation under "audit_id".
func AuditID(id string) slog.Attr {
	return slog.String("audit_id", id)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Report records a sanitization report under the key "report".
func Report(r any) slog.Attr {
	return slog.Any("report", r)
}

// Paths records the offending field paths of a rejected payload.
// Values are never logged. An empty list yields an empty Attr.
func Paths(paths []string) slog.Attr {
	if len(paths) == 0 {
		return slog.Attr{}
	}
	return slog.Any("paths", paths)
}

// Length records a content length in runes under the key "length".
func Length(n int) slog.Attr {
	return slog.Int("length", n)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
