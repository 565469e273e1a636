// Package yamlutil keeps the YAML decoder behind a two-function API so the
// config package never imports the parser directly.
package yamlutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmptyInput    = errors.New("yamlutil: nil or empty data")
	ErrNilTarget     = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge = errors.New("yamlutil: input exceeds maximum size")
)

func check(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilTarget
	}
	return nil
}

// Decode parses data into v and rejects keys that v does not declare.
// Fields absent from data keep whatever value v already holds, so callers
// can decode on top of a populated default.
func Decode(data []byte, v any) error {
	if err := check(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// DecodeExpanded substitutes $VAR and ${VAR} references from the process
// environment before decoding. Unset variables expand to "".
func DecodeExpanded(data []byte, v any) error {
	if err := check(data, v); err != nil {
		return err
	}
	return Decode([]byte(os.ExpandEnv(string(data))), v)
}
