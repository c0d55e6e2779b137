package allowlist

import "errors"

var (
	ErrUnknownCategory   = errors.New("unknown allowlist category")
	ErrDuplicateCategory = errors.New("allowlist category already registered")
	ErrInvalidDefinition = errors.New("invalid allowlist definition")
	ErrInvalidPath       = errors.New("invalid allowlist field path")

	ErrInvalidJSON     = errors.New("invalid JSON payload")
	ErrUnsupportedType = errors.New("unsupported payload type")
	ErrDecode          = errors.New("failed to decode payload")
)
