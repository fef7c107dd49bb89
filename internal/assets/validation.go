package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName accepts style and template names such as "minimal".
// Separators and dots are refused, so a name can neither climb out of the
// asset directory nor pick a different extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
