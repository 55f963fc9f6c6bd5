// pkg/ui/prompt/prompt_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Mock asker
// PURPOSE: Test conflict prompts, sticky answers and interrupted prompts

package prompt_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/testutil"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/arthur-debert/dotf/pkg/ui/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conflict(target string) types.Conflict {
	return types.Conflict{State: types.LinkState{
		Link:   types.ResolvedLink{Target: "/home/u/" + target, Source: "/home/u/.dotf/repo/" + target},
		Status: types.StatusConflict,
	}}
}

func TestResolveConflict(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		want    []types.Policy
		asked   int
	}{
		{
			name:    "one answer per conflict",
			answers: []string{prompt.ChoiceBackup, prompt.ChoiceSkip, prompt.ChoiceBackup},
			want:    []types.Policy{types.PolicyBackup, types.PolicyAbort, types.PolicyBackup},
			asked:   3,
		},
		{
			name:    "backup all sticks",
			answers: []string{prompt.ChoiceSkip, prompt.ChoiceBackupAll},
			want:    []types.Policy{types.PolicyAbort, types.PolicyBackup, types.PolicyBackup},
			asked:   2,
		},
		{
			name:    "skip all sticks",
			answers: []string{prompt.ChoiceSkipAll},
			want:    []types.Policy{types.PolicyAbort, types.PolicyAbort, types.PolicyAbort},
			asked:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asker := testutil.NewMockAsker().WithSelect(tt.answers...)
			p := prompt.New(asker, nil)

			var got []types.Policy
			for _, name := range []string{".a", ".b", ".c"} {
				policy, err := p.ResolveConflict(context.Background(), conflict(name))
				require.NoError(t, err)
				got = append(got, policy)
			}
			assert.Equal(t, tt.want, got)
			assert.Len(t, asker.Questions(), tt.asked)
		})
	}
}

func TestResolveConflictQuestion(t *testing.T) {
	asker := testutil.NewMockAsker().WithSelect(prompt.ChoiceSkip)
	p := prompt.New(asker, func(path string) string { return "~" + path[len("/home/u"):] })

	c := conflict(".vimrc")
	c.State.IsDir = true
	_, err := p.ResolveConflict(context.Background(), c)
	require.NoError(t, err)

	require.Len(t, asker.Questions(), 1)
	assert.Contains(t, asker.Questions()[0], "~/.vimrc already exists as a directory")
	assert.Contains(t, asker.Questions()[0], "~/.dotf/repo/.vimrc")
}

func TestResolveConflictInterrupted(t *testing.T) {
	p := prompt.New(testutil.NewMockAsker(), nil)

	_, err := p.ResolveConflict(context.Background(), conflict(".a"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.ResolveConflict(ctx, conflict(".a"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
}

func TestConfirmAndInput(t *testing.T) {
	asker := testutil.NewMockAsker().WithConfirm(true).WithInput("git@example.com:me/dots.git")
	p := prompt.New(asker, nil)

	ok, err := p.Confirm("Restore all?", false)
	require.NoError(t, err)
	assert.True(t, ok)

	url, err := p.Input("Repository URL", "")
	require.NoError(t, err)
	assert.Equal(t, "git@example.com:me/dots.git", url)

	_, err = p.Confirm("Again?", false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
}
