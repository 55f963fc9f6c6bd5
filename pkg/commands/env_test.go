// pkg/commands/env_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test platform detection and conflict policy selection

package commands_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/dotf/pkg/commands"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/filesystem"
	"github.com/arthur-debert/dotf/pkg/settings"
	"github.com/arthur-debert/dotf/pkg/testutil"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		goos    string
		want    string
		wantErr bool
	}{
		{goos: "darwin", want: commands.PlatformMacOS},
		{goos: "linux", want: commands.PlatformLinux},
		{goos: "windows", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got, err := commands.DetectPlatform(tt.goos)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedHost))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlatformOverride(t *testing.T) {
	f := newFixture(t)
	f.Env.GOOS = "windows"
	f.Env.Settings.Platform = "macos"

	got, err := f.Env.Platform()
	require.NoError(t, err)
	assert.Equal(t, "macos", got)
}

func TestChoosePolicy(t *testing.T) {
	interactive := types.PolicyFunc(func(context.Context, types.Conflict) (types.Policy, error) {
		return "interactive", nil
	})

	tests := []struct {
		name         string
		flag         string
		configured   string
		interactive  types.PolicyResolver
		want         types.Policy
		wantFellBack bool
	}{
		{name: "flag_backup", flag: "backup", configured: settings.PolicyAbort, want: types.PolicyBackup},
		{name: "flag_abort", flag: "abort", configured: settings.PolicyBackup, want: types.PolicyAbort},
		{name: "configured_backup", configured: settings.PolicyBackup, interactive: interactive, want: types.PolicyBackup},
		{name: "prompt", configured: settings.PolicyPrompt, interactive: interactive, want: "interactive"},
		{name: "prompt_without_terminal", configured: settings.PolicyPrompt, want: types.PolicyAbort, wantFellBack: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &settings.Settings{Install: settings.Install{ConflictPolicy: tt.configured}}
			policy, fellBack := commands.ChoosePolicy(tt.flag, s, tt.interactive)

			got, err := policy.ResolveConflict(context.Background(), types.Conflict{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantFellBack, fellBack)
		})
	}
}

func TestInspectionReadsThroughReadFS(t *testing.T) {
	f := newFixture(t).withDotfiles(t)
	f.Link(f.RepoPath("vim/.vimrc"), ".vimrc")

	writes := testutil.NewFaultyFS(f.FS)
	f.Env.FS = writes
	reads := testutil.NewFaultyFS(filesystem.NewReadOnly())
	f.Env.ReadFS = reads

	validation, err := commands.Validate(f.Env, commands.ValidateOptions{})
	require.NoError(t, err)
	assert.True(t, validation.Valid())

	status, err := commands.Status(context.Background(), f.Env, commands.StatusOptions{SkipRepository: true})
	require.NoError(t, err)
	assert.Equal(t, types.StatusValid, status.Links[0].Status)

	summary, err := commands.ShowConfig(f.Env, commands.ConfigOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Symlinks)

	assert.Positive(t, reads.Calls("ReadFile"))
	assert.Positive(t, reads.Calls("Lstat"))
	for _, op := range []string{"ReadFile", "Lstat", "Stat", "Readlink"} {
		assert.Zero(t, writes.Calls(op), op)
	}
}
