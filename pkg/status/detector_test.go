// pkg/status/detector_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test link classification against every filesystem state

package status_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotf/pkg/filesystem"
	"github.com/arthur-debert/dotf/pkg/status"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	home   string
	repo   string
	source string
	target string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{
		home: filepath.Join(root, "home"),
		repo: filepath.Join(root, "repo"),
	}
	require.NoError(t, os.MkdirAll(filepath.Join(f.repo, "vim"), 0755))
	require.NoError(t, os.MkdirAll(f.home, 0755))
	f.source = filepath.Join(f.repo, "vim", ".vimrc")
	f.target = filepath.Join(f.home, ".vimrc")
	require.NoError(t, os.WriteFile(f.source, []byte("set nocompatible"), 0644))
	return f
}

func (f fixture) link() types.ResolvedLink {
	return types.ResolvedLink{
		Declaration: types.Declaration{Target: "~/.vimrc", Source: "vim/.vimrc", Section: "symlinks"},
		Target:      f.target,
		Source:      f.source,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, f fixture)
		want      types.LinkStatus
		isSymlink bool
		isDir     bool
	}{
		{
			name:  "missing",
			setup: func(t *testing.T, f fixture) {},
			want:  types.StatusMissing,
		},
		{
			name: "valid_absolute_link",
			setup: func(t *testing.T, f fixture) {
				require.NoError(t, os.Symlink(f.source, f.target))
			},
			want:      types.StatusValid,
			isSymlink: true,
		},
		{
			name: "valid_relative_link",
			setup: func(t *testing.T, f fixture) {
				require.NoError(t, os.Symlink("../repo/vim/.vimrc", f.target))
			},
			want:      types.StatusValid,
			isSymlink: true,
		},
		{
			name: "regular_file",
			setup: func(t *testing.T, f fixture) {
				require.NoError(t, os.WriteFile(f.target, []byte("mine"), 0644))
			},
			want: types.StatusConflict,
		},
		{
			name: "directory",
			setup: func(t *testing.T, f fixture) {
				require.NoError(t, os.Mkdir(f.target, 0755))
			},
			want:  types.StatusConflict,
			isDir: true,
		},
		{
			name: "link_elsewhere",
			setup: func(t *testing.T, f fixture) {
				other := filepath.Join(f.home, "other")
				require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
				require.NoError(t, os.Symlink(other, f.target))
			},
			want:      types.StatusConflict,
			isSymlink: true,
		},
		{
			name: "dangling_link_elsewhere",
			setup: func(t *testing.T, f fixture) {
				require.NoError(t, os.Symlink(filepath.Join(f.home, "gone"), f.target))
			},
			want:      types.StatusBroken,
			isSymlink: true,
		},
		{
			name: "link_to_deleted_source",
			setup: func(t *testing.T, f fixture) {
				require.NoError(t, os.Symlink(f.source, f.target))
				require.NoError(t, os.Remove(f.source))
			},
			want:      types.StatusBroken,
			isSymlink: true,
		},
		{
			name: "self_loop",
			setup: func(t *testing.T, f fixture) {
				require.NoError(t, os.Symlink(f.target, f.target))
			},
			want:      types.StatusBroken,
			isSymlink: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(t, f)

			state := status.NewDetector(filesystem.NewOS()).Classify(f.link())

			assert.Equal(t, tt.want, state.Status)
			assert.Equal(t, tt.isSymlink, state.IsSymlink)
			assert.Equal(t, tt.isDir, state.IsDir)
			assert.Equal(t, f.target, state.Link.Target)
		})
	}
}

func TestClassifyThroughSymlinkedRepo(t *testing.T) {
	f := newFixture(t)
	alias := filepath.Join(filepath.Dir(f.repo), "repo-alias")
	require.NoError(t, os.Symlink(f.repo, alias))
	require.NoError(t, os.Symlink(filepath.Join(alias, "vim", ".vimrc"), f.target))

	state := status.NewDetector(filesystem.NewOS()).Classify(f.link())
	assert.Equal(t, types.StatusValid, state.Status, "same file reached through another path")
}

func TestClassifyHardLinkElsewhere(t *testing.T) {
	f := newFixture(t)
	other := filepath.Join(filepath.Dir(f.repo), "elsewhere")
	require.NoError(t, os.Link(f.source, other))
	require.NoError(t, os.Symlink(other, f.target))

	state := status.NewDetector(filesystem.NewOS()).Classify(f.link())
	assert.Equal(t, types.StatusConflict, state.Status, "a second name for the source is not the source")
	assert.Equal(t, other, state.Destination)
}

func TestClassifyIsNotCached(t *testing.T) {
	f := newFixture(t)
	d := status.NewDetector(filesystem.NewOS())

	assert.Equal(t, types.StatusMissing, d.Classify(f.link()).Status)
	require.NoError(t, os.Symlink(f.source, f.target))
	assert.Equal(t, types.StatusValid, d.Classify(f.link()).Status)
	require.NoError(t, os.Remove(f.source))
	assert.Equal(t, types.StatusBroken, d.Classify(f.link()).Status)
}

func TestClassifyAll(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Symlink(f.source, f.target))

	missing := f.link()
	missing.Target = filepath.Join(f.home, ".zshrc")

	states := status.NewDetector(filesystem.NewOS()).ClassifyAll([]types.ResolvedLink{f.link(), missing})
	require.Len(t, states, 2)
	assert.Equal(t, types.StatusValid, states[0].Status)
	assert.Equal(t, types.StatusMissing, states[1].Status)
}

func TestDestination(t *testing.T) {
	assert.Equal(t, "/etc/x", status.Destination("/home/a/.x", "/etc/x"))
	assert.Equal(t, "/home/a/dotfiles/x", status.Destination("/home/a/.x", "dotfiles/x"))
	assert.Equal(t, "/home/b/x", status.Destination("/home/a/.x", "../b/x"))
}
