package commands_test

import (
	"os"
	"testing"
	"time"

	"github.com/arthur-debert/dotf/pkg/commands"
	"github.com/arthur-debert/dotf/pkg/settings"
	"github.com/arthur-debert/dotf/pkg/testutil"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	*testutil.TestEnvironment
	Env      *commands.Env
	Repo     *testutil.MockRepository
	Executor *testutil.MockExecutor
}

// newFixture returns an initialized environment on linux with mocked git
// and scripts.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	te := testutil.NewTestEnvironment(t)

	s, err := settings.Load(te.Layout.SettingsPath(), nil)
	require.NoError(t, err)
	s.Repository.Remote = "https://example.com/dotfiles.git"
	s.MarkInitialized(fixedNow.Add(-time.Hour))

	f := &fixture{
		TestEnvironment: te,
		Repo:            testutil.NewMockRepository(),
		Executor:        testutil.NewMockExecutor(),
	}
	f.Env = &commands.Env{
		Layout:     te.Layout,
		FS:         te.FS,
		Settings:   s,
		Repository: f.Repo,
		Scripts:    f.Executor,
		Now:        func() time.Time { return fixedNow },
		GOOS:       "linux",
	}
	return f
}

const dotfiles = `[symlinks]
"~/.vimrc" = "vim/.vimrc"
"~/.zshrc" = "zsh/.zshrc"

[platform.linux.symlinks]
"~/.config/foot/foot.ini" = "foot/foot.ini"

[platform.macos.symlinks]
"~/Library/Preferences/com.example.plist" = "macos/example.plist"

[scripts.deps]
linux = "scripts/deps-linux.sh"

[scripts.custom]
fonts = "scripts/fonts.sh"
`

// withDotfiles writes a complete repository for the dotfiles config.
func (f *fixture) withDotfiles(t *testing.T) *fixture {
	t.Helper()
	f.WriteConfig(dotfiles)
	f.WriteRepoFile("vim/.vimrc", "set nocompatible\n")
	f.WriteRepoFile("zsh/.zshrc", "export EDITOR=vim\n")
	f.WriteRepoFile("foot/foot.ini", "font=monospace\n")
	f.WriteScript("scripts/deps-linux.sh", "echo deps")
	f.WriteScript("scripts/fonts.sh", "echo fonts")
	return f
}

// uninitialized removes the checkout and the init marker.
func (f *fixture) uninitialized(t *testing.T) *fixture {
	t.Helper()
	require.NoError(t, os.RemoveAll(f.Layout.RepoDir()))
	f.Env.Settings.InitializedAt = ""
	f.Env.Settings.Repository.Remote = ""
	return f
}
