// pkg/types/types_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test helper methods of the data model and reports

package types_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleString(t *testing.T) {
	assert.Equal(t, "target", types.RoleTarget.String())
	assert.Equal(t, "source", types.RoleSource.String())
	assert.Equal(t, "role(7)", types.Role(7).String())
}

func TestLocations(t *testing.T) {
	tests := []struct {
		name     string
		location string
		expected string
	}{
		{
			name:     "declaration with line",
			location: types.Declaration{Target: "~/.vimrc", Section: "symlinks", Line: 4}.Location(),
			expected: `[symlinks] "~/.vimrc" (line 4)`,
		},
		{
			name:     "declaration without line",
			location: types.Declaration{Target: "~/.vimrc", Section: "platform.macos.symlinks"}.Location(),
			expected: `[platform.macos.symlinks] "~/.vimrc"`,
		},
		{
			name:     "issue with subject and line",
			location: types.ValidationIssue{Section: "scripts.custom", Subject: "fonts", Line: 9}.Location(),
			expected: `[scripts.custom] "fonts" (line 9)`,
		},
		{
			name:     "issue on a section",
			location: types.ValidationIssue{Section: "symlinks"}.Location(),
			expected: "[symlinks]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.location)
		})
	}
}

func TestValidationIssueString(t *testing.T) {
	issue := types.ValidationIssue{
		Kind:    types.IssueMissingSource,
		Section: "symlinks",
		Subject: "~/.zshrc",
		Message: "source zsh/zshrc does not exist",
	}
	assert.Equal(t, `[symlinks] "~/.zshrc": source zsh/zshrc does not exist`, issue.String())
}

func TestProjectionResultSucceeded(t *testing.T) {
	for outcome, want := range map[types.Outcome]bool{
		types.OutcomeCreated:   true,
		types.OutcomeUnchanged: true,
		types.OutcomeRemoved:   true,
		types.OutcomeAborted:   false,
		types.OutcomeSkipped:   false,
		types.OutcomeError:     false,
	} {
		assert.Equal(t, want, types.ProjectionResult{Outcome: outcome}.Succeeded(), string(outcome))
	}
}

func TestFixedPolicy(t *testing.T) {
	policy, err := types.FixedPolicy(types.PolicyAbort).ResolveConflict(context.Background(), types.Conflict{})
	require.NoError(t, err)
	assert.Equal(t, types.PolicyAbort, policy)
}

func TestReports(t *testing.T) {
	t.Run("summary", func(t *testing.T) {
		assert.False(t, types.Summary{Total: 2, Created: 1, Aborted: 1}.Failed())
		assert.True(t, types.Summary{Total: 1, Errors: 1}.Failed())
	})

	t.Run("validation", func(t *testing.T) {
		assert.True(t, types.ValidationReport{}.Valid())
		assert.False(t, types.ValidationReport{Issues: []types.ValidationIssue{{Kind: types.IssueSyntax}}}.Valid())
	})

	t.Run("status counts", func(t *testing.T) {
		report := types.StatusReport{Links: []types.LinkEntry{
			{Status: types.StatusValid},
			{Status: types.StatusValid},
			{Status: types.StatusBroken},
		}}
		counts := report.Counts()
		assert.Equal(t, 2, counts[types.StatusValid])
		assert.Equal(t, 1, counts[types.StatusBroken])
		assert.Zero(t, counts[types.StatusConflict])
	})

	t.Run("status problems", func(t *testing.T) {
		report := types.StatusReport{Links: []types.LinkEntry{
			{Status: types.StatusValid},
			{Status: types.StatusMissing},
			{Status: types.StatusConflict},
		}}
		assert.Equal(t, 2, report.Problems())
	})

	t.Run("config", func(t *testing.T) {
		assert.True(t, types.ConfigReport{Symlinks: 3}.Valid())
		assert.False(t, types.ConfigReport{Issues: []types.ValidationIssue{{Kind: types.IssueDuplicateTarget}}}.Valid())
	})

	t.Run("restore", func(t *testing.T) {
		report := types.RestoreReport{Entries: []types.RestoreEntry{
			{Outcome: types.RestoreRestored},
			{Outcome: types.RestoreSkipped},
		}}
		assert.False(t, report.Failed())
		report.Entries = append(report.Entries, types.RestoreEntry{Outcome: types.RestoreFailed})
		assert.True(t, report.Failed())
	})
}
