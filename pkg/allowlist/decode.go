package allowlist

import (
	"errors"

	"github.com/mitchellh/mapstructure"
)

// Decode copies v into out, which must be a non-nil pointer. Struct fields
// are matched by their json tag.
func Decode(v Value, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "json",
	})
	if err != nil {
		return errors.Join(ErrDecode, err)
	}
	if err := dec.Decode(v.Any()); err != nil {
		return errors.Join(ErrDecode, err)
	}
	return nil
}
