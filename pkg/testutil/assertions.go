package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSymlink checks that path is a symlink whose raw destination is dest.
func AssertSymlink(t *testing.T, path, dest string) {
	t.Helper()
	info, err := os.Lstat(path)
	require.NoError(t, err, "expected a symlink at %s", path)
	require.NotZero(t, info.Mode()&os.ModeSymlink, "%s is not a symlink", path)
	got, err := os.Readlink(path)
	require.NoError(t, err)
	assert.Equal(t, dest, got, "symlink destination of %s", path)
}

// AssertFileContent checks that path is a regular file holding content.
func AssertFileContent(t *testing.T, path, content string) {
	t.Helper()
	info, err := os.Lstat(path)
	require.NoError(t, err, "expected a file at %s", path)
	require.True(t, info.Mode().IsRegular(), "%s is not a regular file", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

// AssertNoEntry checks that nothing, not even a dangling link, is at path.
func AssertNoEntry(t *testing.T, path string) {
	t.Helper()
	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err), "expected nothing at %s, got err=%v", path, err)
}
