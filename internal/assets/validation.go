package assets

import (
	"fmt"
	"strings"
)

// validateName rejects asset names that are empty or would leave the
// styles or templates directory: no separators and no dots.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
