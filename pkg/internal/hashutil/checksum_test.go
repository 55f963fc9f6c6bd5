// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test checksum format and matching

package hashutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotf/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileChecksum(t *testing.T) {
	fsys := filesystem.NewOS()
	path := filepath.Join(t.TempDir(), "vimrc")
	require.NoError(t, os.WriteFile(path, []byte("set nocompatible\n"), 0644))

	sum, err := FileChecksum(fsys, path)
	require.NoError(t, err)
	assert.Len(t, sum, len(Prefix)+64)
	assert.Equal(t, Sum([]byte("set nocompatible\n")), sum)

	ok, err := Matches(fsys, path, sum)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("changed"), 0644))
	ok, err = Matches(fsys, path, sum)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = FileChecksum(fsys, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestSumKnownValue(t *testing.T) {
	assert.Equal(t,
		"sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Sum(nil))
}
