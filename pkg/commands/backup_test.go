// pkg/commands/backup_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem
// PURPOSE: Test listing and restoring backups taken by install

package commands_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/dotf/pkg/commands"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/testutil"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// installOverExisting installs with PolicyBackup over hand written files.
func installOverExisting(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t).withDotfiles(t)
	f.WriteHomeFile(".vimrc", "my vimrc")
	f.WriteHomeFile(".zshrc", "my zshrc")

	_, err := commands.InstallConfig(context.Background(), f.Env, commands.InstallOptions{
		Policy: types.FixedPolicy(types.PolicyBackup),
	})
	require.NoError(t, err)
	return f
}

func TestListBackups(t *testing.T) {
	f := installOverExisting(t)

	report, err := commands.ListBackups(f.Env)
	require.NoError(t, err)

	assert.Equal(t, "~/.dotf/backups", report.Root)
	require.Len(t, report.Records, 2)
	originals := []string{report.Records[0].Original, report.Records[1].Original}
	assert.ElementsMatch(t, []string{"~/.vimrc", "~/.zshrc"}, originals)
}

func TestListBackupsEmpty(t *testing.T) {
	f := newFixture(t)

	report, err := commands.ListBackups(f.Env)
	require.NoError(t, err)
	assert.Empty(t, report.Records)
}

func TestRestore(t *testing.T) {
	f := installOverExisting(t)

	report, err := commands.Restore(f.Env, "~/.vimrc", commands.RestoreOptions{})
	require.NoError(t, err)

	require.Len(t, report.Entries, 1)
	assert.Equal(t, "~/.vimrc", report.Entries[0].Original)
	assert.Equal(t, types.RestoreRestored, report.Entries[0].Outcome)
	testutil.AssertFileContent(t, f.HomePath(".vimrc"), "my vimrc")

	// The record was consumed
	_, err = commands.Restore(f.Env, f.HomePath(".vimrc"), commands.RestoreOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrRestoreNotFound))
}

func TestRestoreAll(t *testing.T) {
	f := installOverExisting(t)

	report, err := commands.RestoreAll(f.Env, commands.RestoreOptions{})
	require.NoError(t, err)

	require.Len(t, report.Entries, 2)
	assert.False(t, report.Failed())
	testutil.AssertFileContent(t, f.HomePath(".vimrc"), "my vimrc")
	testutil.AssertFileContent(t, f.HomePath(".zshrc"), "my zshrc")
}

func TestRestoreRequiresPath(t *testing.T) {
	f := newFixture(t)

	_, err := commands.Restore(f.Env, "", commands.RestoreOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
