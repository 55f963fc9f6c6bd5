// pkg/repository/git_parse_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test parsing of git plumbing output

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSymref(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{"main", "ref: refs/heads/main\tHEAD\n3f2a\tHEAD", "main"},
		{"trunk", "ref: refs/heads/trunk\tHEAD", "trunk"},
		{"no symref", "3f2a\tHEAD", DefaultBranch},
		{"empty", "", DefaultBranch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSymref(tt.out))
		})
	}
}

func TestParsePorcelain(t *testing.T) {
	out := " M vim/.vimrc\n" +
		"M  zsh/.zshrc\n" +
		"?? new/\n" +
		"R  old.conf -> tmux/tmux.conf\n" +
		"?? \"with space\"\n"

	assert.Equal(t, []string{
		"vim/.vimrc",
		"zsh/.zshrc",
		"new/",
		"tmux/tmux.conf",
		"with space",
	}, parsePorcelain(out))
	assert.Empty(t, parsePorcelain(""))
}

func TestParseAheadBehind(t *testing.T) {
	ahead, behind := parseAheadBehind("2\t5")
	assert.Equal(t, 2, ahead)
	assert.Equal(t, 5, behind)

	ahead, behind = parseAheadBehind("garbage")
	assert.Zero(t, ahead)
	assert.Zero(t, behind)
}

func TestStatusIsModified(t *testing.T) {
	s := Status{Modified: []string{"vim/.vimrc", "new/"}}

	assert.True(t, s.IsModified("vim/.vimrc"))
	assert.True(t, s.IsModified("new/file"))
	assert.False(t, s.IsModified("vim"))
	assert.False(t, s.IsModified("zsh/.zshrc"))
}
