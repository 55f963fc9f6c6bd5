package paths

import (
	"strings"

	"github.com/arthur-debert/dotf/pkg/errors"
)

// MaxPathLength is the longest path accepted in a declaration.
const MaxPathLength = 4096

// ValidatePath performs the role independent checks on a raw path:
// - Empty paths
// - Null bytes and other control characters
// - Excessive path length
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New(errors.ErrInvalidPath, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidPath, "path contains null bytes")
	}

	for _, r := range path {
		if r < 32 || r == 127 {
			return errors.New(errors.ErrInvalidPath, "path contains control characters")
		}
	}

	if len(path) > MaxPathLength {
		return errors.New(errors.ErrInvalidPath, "path exceeds maximum length")
	}

	return nil
}
