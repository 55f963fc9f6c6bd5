// pkg/config/config_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None (in-memory documents), real filesystem for Load/Find
// PURPOSE: Test TOML and YAML configuration parsing

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotf/pkg/config"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/filesystem"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullTOML = `[repo]
name = "dotfiles"
author = "Alice"

[symlinks]
"~/.vimrc" = "vim/.vimrc"
"~/.zshrc" = "zsh/.zshrc"

[scripts.deps]
macos = "scripts/macos.sh"
linux = "scripts/linux.sh"

[scripts.custom]
fonts = "scripts/fonts.sh"

[platform.macos.symlinks]
"~/.hammerspoon" = "macos/hammerspoon"

[platform.linux.symlinks]
"~/.config/i3/config" = "linux/i3"
`

func TestParseTOML(t *testing.T) {
	cfg, err := config.Parse([]byte(fullTOML), config.FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "dotfiles", cfg.Repo.Name)
	assert.Equal(t, "Alice", cfg.Repo.Author)
	assert.True(t, cfg.HasSymlinks)
	require.Len(t, cfg.Symlinks, 2)
	assert.Equal(t, types.Declaration{Target: "~/.vimrc", Source: "vim/.vimrc", Section: "symlinks", Line: 6}, cfg.Symlinks[0])
	assert.Equal(t, 7, cfg.Symlinks[1].Line)

	assert.Equal(t, []string{"macos", "linux"}, cfg.Platforms())
	deps, ok := cfg.DepsScript("linux")
	require.True(t, ok)
	assert.Equal(t, "scripts/linux.sh", deps.Path)
	assert.Equal(t, config.SectionDeps, deps.Section)

	fonts, ok := cfg.CustomScript("fonts")
	require.True(t, ok)
	assert.Equal(t, "scripts/fonts.sh", fonts.Path)
	_, ok = cfg.CustomScript("missing")
	assert.False(t, ok)

	decls := cfg.Declarations("macos")
	require.Len(t, decls, 3)
	assert.Equal(t, "~/.hammerspoon", decls[2].Target)
	assert.Equal(t, "platform.macos.symlinks", decls[2].Section)
	assert.Len(t, cfg.Declarations("windows"), 2)
}

func TestParseTOMLKeepsRepeatedTargets(t *testing.T) {
	cfg, err := config.Parse([]byte(`[symlinks]
"~/.vimrc" = "vim/.vimrc"
"~/.vimrc" = "backup/.vimrc"
`), config.FormatTOML)
	require.NoError(t, err)
	require.Len(t, cfg.Symlinks, 2)
	assert.Equal(t, "backup/.vimrc", cfg.Symlinks[1].Source)
	assert.Equal(t, 3, cfg.Symlinks[1].Line)
}

func TestParseTOMLKeyForms(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		decls []types.Declaration
	}{
		{
			name:  "dotted_key",
			doc:   `symlinks."~/.gitconfig" = "git/config"`,
			decls: []types.Declaration{{Target: "~/.gitconfig", Source: "git/config", Section: "symlinks", Line: 1}},
		},
		{
			name:  "inline_table",
			doc:   `symlinks = { "~/.a" = "a", "~/.b" = 'b' }`,
			decls: []types.Declaration{{Target: "~/.a", Source: "a", Section: "symlinks", Line: 1}, {Target: "~/.b", Source: "b", Section: "symlinks", Line: 1}},
		},
		{
			name:  "literal_key",
			doc:   "[symlinks]\n'~/.config/a.b' = \"ab\"\n",
			decls: []types.Declaration{{Target: "~/.config/a.b", Source: "ab", Section: "symlinks", Line: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(tt.doc), config.FormatTOML)
			require.NoError(t, err)
			assert.True(t, cfg.HasSymlinks)
			assert.Equal(t, tt.decls, cfg.Symlinks)
		})
	}
}

func TestParseTOMLSections(t *testing.T) {
	cfg, err := config.Parse([]byte("[scripts.custom]\nx = \"x.sh\"\n"), config.FormatTOML)
	require.NoError(t, err)
	assert.False(t, cfg.HasSymlinks)

	cfg, err = config.Parse([]byte("[symlinks]\n"), config.FormatTOML)
	require.NoError(t, err)
	assert.True(t, cfg.HasSymlinks)
	assert.Empty(t, cfg.Symlinks)

	cfg, err = config.Parse([]byte("[future]\nthing = 1\n"), config.FormatTOML)
	require.NoError(t, err, "unknown sections are ignored")
	assert.False(t, cfg.HasSymlinks)
}

func TestParseTOMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.ErrorCode
		line int
	}{
		{name: "syntax", doc: "[symlinks]\n\"~/.vimrc\" = \n", code: errors.ErrConfigParse, line: 2},
		{name: "unterminated_table", doc: "[symlinks\n", code: errors.ErrConfigParse},
		{name: "non_string_source", doc: "[symlinks]\n\"~/.vimrc\" = 3\n", code: errors.ErrConfigInvalid, line: 2},
		{name: "symlinks_not_table", doc: "symlinks = \"x\"\n", code: errors.ErrConfigInvalid, line: 1},
		{name: "overlay_not_table", doc: "[platform.macos]\nsymlinks = \"x\"\n", code: errors.ErrConfigInvalid, line: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.doc), config.FormatTOML)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err), "got %v", err)
			if tt.line > 0 {
				assert.Equal(t, tt.line, errors.GetErrorDetails(err)["line"])
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	doc := `repo:
  name: dotfiles
symlinks:
  "~/.vimrc": vim/.vimrc
  "~/.vimrc": backup/.vimrc
scripts:
  deps:
    linux: scripts/linux.sh
platform:
  linux:
    symlinks:
      "~/.config/i3/config": linux/i3
`
	cfg, err := config.Parse([]byte(doc), config.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, config.FormatYAML, cfg.Format)
	assert.Equal(t, "dotfiles", cfg.Repo.Name)
	require.Len(t, cfg.Symlinks, 2)
	assert.Equal(t, types.Declaration{Target: "~/.vimrc", Source: "vim/.vimrc", Section: "symlinks", Line: 4}, cfg.Symlinks[0])
	assert.Equal(t, 5, cfg.Symlinks[1].Line)

	decls := cfg.Declarations("linux")
	require.Len(t, decls, 3)
	assert.Equal(t, "platform.linux.symlinks", decls[2].Section)
	assert.Equal(t, 12, decls[2].Line)
}

func TestParseYAMLScalarTypes(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
		source  string
	}{
		{name: "plain", doc: "symlinks:\n  \"~/.x\": x/file\n", source: "x/file"},
		{name: "quoted_number", doc: "symlinks:\n  \"~/.x\": \"42\"\n", source: "42"},
		{name: "number", doc: "symlinks:\n  \"~/.x\": 42\n", wantErr: true},
		{name: "boolean", doc: "symlinks:\n  \"~/.x\": true\n", wantErr: true},
		{name: "float_in_overlay", doc: "platform:\n  linux:\n    symlinks:\n      \"~/.x\": 1.5\n", wantErr: true},
		{name: "number_as_script", doc: "scripts:\n  custom:\n    fonts: 7\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(tt.doc), config.FormatYAML)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid), "got %v", err)
				assert.Contains(t, err.Error(), "must be a string")
				return
			}
			require.NoError(t, err)
			require.Len(t, cfg.Symlinks, 1)
			assert.Equal(t, tt.source, cfg.Symlinks[0].Source)
		})
	}
}

func TestParseYAMLEdgeCases(t *testing.T) {
	cfg, err := config.Parse([]byte(""), config.FormatYAML)
	require.NoError(t, err)
	assert.False(t, cfg.HasSymlinks)

	cfg, err = config.Parse([]byte("symlinks:\n"), config.FormatYAML)
	require.NoError(t, err)
	assert.True(t, cfg.HasSymlinks)

	_, err = config.Parse([]byte("- a\n- b\n"), config.FormatYAML)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))

	_, err = config.Parse([]byte("symlinks:\n  a: [b\n"), config.FormatYAML)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoadAndFind(t *testing.T) {
	fs := filesystem.NewOS()
	dir := t.TempDir()

	_, err := config.Find(fs, dir)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dotf.yml"), []byte("symlinks: {}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dotf.toml"), []byte(fullTOML), 0644))

	path, err := config.Find(fs, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dotf.toml"), path, "TOML wins over YAML")

	cfg, err := config.Load(fs, path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Len(t, cfg.Symlinks, 2)

	_, err = config.Load(fs, filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	_, err = config.Load(fs, filepath.Join(dir, "dotf.json"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestTemplate(t *testing.T) {
	for _, format := range []config.Format{config.FormatTOML, config.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := config.Template("my-dotfiles", format)
			require.NoError(t, err)

			cfg, err := config.Parse(data, format)
			require.NoError(t, err)
			assert.Equal(t, "my-dotfiles", cfg.Repo.Name)
			assert.True(t, cfg.HasSymlinks)
			assert.Empty(t, cfg.Symlinks)
		})
	}
}
