// pkg/ui/text/renderer_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test plain text rendering of reports

package text_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/arthur-debert/dotf/pkg/ui/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLinkReport(t *testing.T) {
	var buf bytes.Buffer
	r := text.New(&buf, false)

	rep := &types.LinkReport{
		Command:  "install",
		Platform: "linux",
		Bucket:   "20260301-120000.000000000",
		Entries: []types.LinkEntry{
			{Target: "~/.vimrc", Source: "vim/.vimrc", Outcome: types.OutcomeCreated},
			{Target: "~/.gitconfig", Source: "git/config", Outcome: types.OutcomeCreated, BackupID: "20260301-120000.000000000/1"},
			{Target: "~/.zshrc", Source: "zsh/.zshrc", Outcome: types.OutcomeError, Error: "source does not exist"},
		},
		Summary: types.Summary{Total: 3, Created: 2, Errors: 1, BackedUp: 1},
	}
	require.NoError(t, r.RenderResult(rep))

	out := buf.String()
	assert.Contains(t, out, "install on linux")
	assert.Contains(t, out, "✓ ~/.vimrc → vim/.vimrc  linked")
	assert.Contains(t, out, "(backup 20260301-120000.000000000/1)")
	assert.Contains(t, out, "✗ ~/.zshrc → zsh/.zshrc  failed: source does not exist")
	assert.Contains(t, out, "Summary: 2 linked, 1 failed, 1 backed up")
	assert.NotContains(t, out, "\x1b[", "plain output has no escape codes")
}

func TestRenderDryRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, text.New(&buf, false).RenderResult(&types.LinkReport{
		Command: "install",
		DryRun:  true,
		Entries: []types.LinkEntry{{Target: "~/.vimrc", Source: "vim/.vimrc", Outcome: types.OutcomeCreated}},
		Summary: types.Summary{Total: 1, Created: 1},
	}))

	assert.Contains(t, buf.String(), "install (dry run)")
	assert.Contains(t, buf.String(), "will be linked")
}

func TestRenderValidationReport(t *testing.T) {
	var buf bytes.Buffer
	r := text.New(&buf, false)

	require.NoError(t, r.RenderResult(&types.ValidationReport{Config: "dotf.toml"}))
	assert.Equal(t, "✓ dotf.toml is valid\n", buf.String())

	buf.Reset()
	require.NoError(t, r.RenderResult(&types.ValidationReport{
		Config: "dotf.toml",
		Issues: []types.ValidationIssue{{
			Kind: types.IssueDuplicateTarget, Section: "symlinks", Subject: "~/.vimrc", Line: 4,
			Message: "target is declared more than once",
		}},
	}))
	assert.Contains(t, buf.String(), "dotf.toml: 1 issue")
	assert.Contains(t, buf.String(), `[symlinks] "~/.vimrc" (line 4) target is declared more than once`)
}

func TestRenderStatusReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, text.New(&buf, false).RenderResult(&types.StatusReport{
		Platform:   "macos",
		Repository: &types.RepositoryState{Path: "~/.dotf/repo", Branch: "main", Clean: true},
		Links: []types.LinkEntry{
			{Target: "~/.vimrc", Source: "vim/.vimrc", Status: types.StatusValid, Modified: true},
			{Target: "~/.zshrc", Source: "zsh/.zshrc", Status: types.StatusBroken, Destination: "/gone"},
		},
	}))

	out := buf.String()
	assert.Contains(t, out, "~/.dotf/repo on main, clean")
	assert.Contains(t, out, "valid (modified)")
	assert.Contains(t, out, "broken points at /gone")
	assert.Contains(t, out, "1 valid, 0 missing, 0 conflict, 1 broken")
}

func TestRenderBriefStatus(t *testing.T) {
	tests := []struct {
		name    string
		report  *types.StatusReport
		want    []string
		notWant []string
	}{
		{
			name: "all valid",
			report: &types.StatusReport{
				Platform:   "linux",
				Brief:      true,
				Repository: &types.RepositoryState{Branch: "main", Clean: true},
				Links:      []types.LinkEntry{{Target: "~/.vimrc", Status: types.StatusValid}},
			},
			want:    []string{"✓ Initialized on linux", "✓ All 1 links OK"},
			notWant: []string{"~/.vimrc", "local changes"},
		},
		{
			name: "problems",
			report: &types.StatusReport{
				Platform:   "linux",
				Brief:      true,
				Repository: &types.RepositoryState{Branch: "main", Behind: 2, Ahead: 1},
				Links: []types.LinkEntry{
					{Target: "~/.vimrc", Status: types.StatusValid},
					{Target: "~/.zshrc", Status: types.StatusConflict},
				},
			},
			want: []string{"! Repository has local changes", "• 2 commits behind", "• 1 commits ahead", "! 1 of 2 links need attention"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, text.New(&buf, false).RenderResult(tt.report))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, buf.String(), w)
			}
		})
	}
}

func TestRenderConfigReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, text.New(&buf, false).RenderResult(&types.ConfigReport{
		Config:           "~/.dotf/repo/dotf.toml",
		Name:             "mine",
		Description:      "my dotfiles",
		Symlinks:         2,
		PlatformSymlinks: map[string]int{"linux": 1},
		Scripts:          2,
		Custom:           []string{"fonts"},
		Platforms:        []string{"linux", "macos"},
		Issues:           []types.ValidationIssue{{Section: "symlinks", Subject: "~/.zshrc", Message: "source zsh/.zshrc does not exist"}},
		Content:          "[symlinks]",
	}))

	out := buf.String()
	assert.Contains(t, out, "Configuration ~/.dotf/repo/dotf.toml")
	assert.Contains(t, out, "mine: my dotfiles")
	assert.Contains(t, out, "2 symlinks, linux +1\n")
	assert.Contains(t, out, "2 scripts (custom: fonts)")
	assert.Contains(t, out, "platforms linux, macos")
	assert.Contains(t, out, "✗ 1 issues")
	assert.Contains(t, out, `[symlinks] "~/.zshrc" source zsh/.zshrc does not exist`)
	assert.True(t, strings.HasSuffix(out, "\n[symlinks]\n"))
}

func TestRenderSettingsReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, text.New(&buf, false).RenderResult(&types.SettingsReport{
		Path:    "/home/u/.config/dotf/settings.toml",
		Remote:  "https://example.com/other.git",
		Branch:  "main",
		Changed: true,
	}))
	assert.Contains(t, buf.String(), "✓ Saved /home/u/.config/dotf/settings.toml")
	assert.Contains(t, buf.String(), "remote https://example.com/other.git on main")
	assert.Contains(t, buf.String(), "dotf init --force")

	buf.Reset()
	require.NoError(t, text.New(&buf, false).RenderResult(&types.SettingsReport{Remote: "r", Branch: "main"}))
	assert.Contains(t, buf.String(), "Settings unchanged")
	assert.NotContains(t, buf.String(), "init --force")
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	err := errors.New(errors.ErrNotInitialized, "run dotf init first")
	require.NoError(t, text.New(&buf, false).RenderError(err))

	assert.Equal(t, "✗ Error: [NOT_INITIALIZED] run dotf init first\n", buf.String())
}
