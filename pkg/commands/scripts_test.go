// pkg/commands/scripts_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem, mock script executor
// PURPOSE: Test dependency, custom and full installs

package commands_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/dotf/pkg/commands"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/testutil"
	"github.com/arthur-debert/dotf/pkg/ui/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallDeps(t *testing.T) {
	f := newFixture(t).withDotfiles(t)

	report, err := commands.InstallDeps(context.Background(), f.Env)
	require.NoError(t, err)

	assert.Equal(t, "linux", report.Name)
	assert.Equal(t, "scripts/deps-linux.sh", report.Path)
	require.Len(t, f.Executor.Runs(), 1)
	assert.Equal(t, f.RepoPath("scripts/deps-linux.sh"), f.Executor.Runs()[0].Path)
}

func TestInstallDepsNotConfigured(t *testing.T) {
	f := newFixture(t).withDotfiles(t)
	f.Env.GOOS = "darwin"

	report, err := commands.InstallDeps(context.Background(), f.Env)
	require.NoError(t, err)
	assert.Equal(t, "no dependency script configured for macos", report.Skipped)
	assert.Empty(t, f.Executor.Runs())
}

func TestInstallDepsFailure(t *testing.T) {
	f := newFixture(t).withDotfiles(t)
	f.Executor.ExitWith(f.RepoPath("scripts/deps-linux.sh"), 3)

	report, err := commands.InstallDeps(context.Background(), f.Env)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptExecute))
	require.NotNil(t, report)
	assert.Equal(t, 3, report.ExitCode)
	assert.NotEmpty(t, report.Error)
}

func TestInstallCustom(t *testing.T) {
	f := newFixture(t).withDotfiles(t)

	report, err := commands.InstallCustom(context.Background(), f.Env, "fonts", []string{"--all"})
	require.NoError(t, err)
	assert.Equal(t, "fonts", report.Name)
	assert.Equal(t, []testutil.ScriptRun{{Path: f.RepoPath("scripts/fonts.sh"), Args: []string{"--all"}}}, f.Executor.Runs())

	_, err = commands.InstallCustom(context.Background(), f.Env, "themes", nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingScript))
	assert.Equal(t, []string{"fonts"}, errors.GetErrorDetails(err)["available"])
}

func TestInstallAll(t *testing.T) {
	tests := []struct {
		name       string
		depsExit   int
		answers    []bool
		wantLinks  bool
		wantCustom int
		wantErr    errors.ErrorCode
	}{
		{name: "runs_chosen_custom_scripts", answers: []bool{true, true}, wantLinks: true, wantCustom: 1},
		{name: "declines_custom_scripts", answers: []bool{false}, wantLinks: true},
		{name: "continues_after_failed_deps", depsExit: 1, answers: []bool{true, false}, wantLinks: true},
		{name: "stops_after_failed_deps", depsExit: 1, answers: []bool{false}, wantErr: errors.ErrScriptExecute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t).withDotfiles(t)
			f.Executor.ExitWith(f.RepoPath("scripts/deps-linux.sh"), tt.depsExit)
			asker := testutil.NewMockAsker().WithConfirm(tt.answers...)

			report, err := commands.InstallAll(context.Background(), f.Env, commands.InstallAllOptions{
				Confirm: prompt.New(asker, nil),
			})
			if tt.wantErr != "" {
				assert.True(t, errors.IsErrorCode(err, tt.wantErr))
			} else {
				require.NoError(t, err)
			}

			require.NotNil(t, report.Deps)
			assert.Equal(t, tt.wantLinks, report.Links != nil)
			assert.Len(t, report.Custom, tt.wantCustom)
			assert.Len(t, asker.Questions(), len(tt.answers))
		})
	}
}

func TestInstallAllWithoutConfirmer(t *testing.T) {
	f := newFixture(t).withDotfiles(t)

	report, err := commands.InstallAll(context.Background(), f.Env, commands.InstallAllOptions{})
	require.NoError(t, err)
	assert.NotNil(t, report.Links)
	assert.Empty(t, report.Custom, "custom scripts only run when confirmed")
	assert.Len(t, f.Executor.Runs(), 1)
}
