package privacykit

import "errors"

var (
	// ErrUnsafePayload is returned by SafePayload when validation rejects the
	// payload. The wrapping error names the reason and the audit id.
	ErrUnsafePayload = errors.New("payload rejected by allowlist validation")

	// ErrInvalidConfig is matched by every ValidationError returned from Config.Validate.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrLoadingCategories is returned by New when CategoriesFile cannot be
	// loaded or registered.
	ErrLoadingCategories = errors.New("failed to load allowlist categories")
)
