// Package hashutil computes content checksums of backed up files.
package hashutil

import (
	"crypto/sha256"
	"fmt"

	"github.com/arthur-debert/dotf/pkg/types"
)

// Prefix names the algorithm in stored checksums.
const Prefix = "sha256:"

// FileChecksum returns the checksum of the regular file at path as
// "sha256:<hex>".
func FileChecksum(fsys types.FS, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Sum(data), nil
}

// Sum returns the checksum of data.
func Sum(data []byte) string {
	return fmt.Sprintf("%s%x", Prefix, sha256.Sum256(data))
}

// Matches reports whether the file at path still has checksum want.
func Matches(fsys types.FS, path, want string) (bool, error) {
	got, err := FileChecksum(fsys, path)
	if err != nil {
		return false, err
	}
	return got == want, nil
}
